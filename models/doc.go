// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and persistent types for the API.

# Persistent Types

  - Admin: an authorized principal (table "admins")

Admin emails are normalized by a gorm BeforeSave hook (trimmed and
lower-cased), and the email column carries a unique index, so a lookup by
normalized email matches at most one row:

	models.NormalizeEmail("  Ada@Example.com ") // "ada@example.com"

All returns every model for the migrator:

	gdb.AutoMigrate(models.All()...)

# Request Types

  - CheckAdminRequest: email (validated as required, well-formed)

# Response Types

  - AdminResponse: id, name, email
  - HealthResponse: status
  - ErrorResponse: detail

Every error body has the shape {"detail": "..."}.
*/
package models
