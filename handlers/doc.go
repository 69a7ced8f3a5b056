// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the admin-gate API.

# Handler Types

Each handler is a struct built from its dependencies:

  - AdminHandler: admin lookup by email (needs an auth.AdminFinder)
  - HealthHandler: liveness and readiness (needs a Pinger)

Both are normally backed by a *store.AdminStore:

	admins := store.NewAdminStore(gdb)
	adminHandler := handlers.NewAdminHandler(admins)

# Admin Lookup

	POST /check-admin   {"email": "ada@example.com"}

Responses:

  - 200 {"id": 1, "name": "Ada", "email": "ada@example.com"}
  - 403 {"detail": "Not authorized"} for unknown or malformed emails
  - 422 {"detail": "Invalid request body"} when the body is not JSON or has no email
  - 500 {"detail": "Internal server error"} when the database fails

The email is normalized before validation and lookup. A malformed address
is answered like an unknown one, so callers cannot probe which addresses
are well-formed.

# Health

	GET /health        → Live ("OK")
	GET /health/ready  → Ready ({"status": "ok"} or 503 {"status": "unavailable"})
*/
package handlers
