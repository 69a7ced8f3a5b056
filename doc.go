// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the admin-gate API server.

admin-gate answers one question for the web frontend: is this email an
administrator? Requests are only served when they carry the secret the two
services share.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SHARED_SECRET=... go run .

Or with flags:

	go run . -p 8000 -d "postgres://..." --shared-secret "..."

A .env file in the working directory is loaded first; variables already
present in the environment win.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - SHARED_SECRET (--shared-secret): value expected in X-Shared-Secret

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): postgres (default) or sqlite
  - RUN_MIGRATIONS (--migrate): apply schema migrations at startup
  - CORS_ORIGIN (--cors-origin): allowed browser origin
  - LOG_LEVEL (--log-level): debug, info, warn, error
  - ENV_FILE (--env-file): dotenv file to load
  - DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME: pool sizing

Without SHARED_SECRET the process exits before opening the database.

# Architecture

  - handlers: HTTP request handlers (admin lookup, health)
  - router: Route definitions and middleware chain
  - middleware: shared-secret gate, logging, recovery, CORS, JSON helpers
  - auth: secret comparison and admin authorization
  - store: gorm queries for admin records
  - models: persistent, request and response types
  - db: connection pool and migrations
  - cliparse: Configuration parsing
  - cmd/adminctl: out-of-band admin management

See package documentation for each component.
*/
package main
