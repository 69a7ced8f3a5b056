// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: connection string (required)
  - DatabaseType: postgres (default) or sqlite
  - SharedSecret: value expected in X-Shared-Secret (required)
  - Migrate: apply schema migrations at startup (default: false)
  - CORSOrigin: allowed browser origin (default: echo the request)
  - LogLevel: slog level (default: info)
  - MaxOpenConns, MaxIdleConns, ConnMaxLifetime: pool sizing (10, 5, 30m)

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	--shared-secret     Shared secret
	--migrate           Run migrations at startup
	--cors-origin       Allowed CORS origin
	--log-level         Log level
	--env-file          Dotenv file
	--max-open-conns, --max-idle-conns, --conn-max-lifetime

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SHARED_SECRET  → --shared-secret
	RUN_MIGRATIONS → --migrate
	CORS_ORIGIN    → --cors-origin
	LOG_LEVEL      → --log-level
	ENV_FILE       → --env-file
	DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME

CLI flags take precedence over environment variables, and real environment
variables take precedence over the dotenv file. The default .env may be
missing; an explicitly named file must exist.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided (ErrMissingDatabaseURL)
  - SHARED_SECRET must be provided (ErrMissingSharedSecret)

An empty secret would let every request through, so the server refuses to
start instead.

# Logging

Config implements slog.LogValuer and leaves out the secret and the
database URL:

	slog.Info("Configuration loaded", "config", cfg)
*/
package cliparse
