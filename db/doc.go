// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the database connection pool.

# Opening

Open creates the pool with database/sql, pings it, and hands the
connection to gorm:

	gdb, err := db.Open(db.OptionsFromConfig(cfg), slog.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close(gdb)

Supported types:

  - postgres: github.com/lib/pq through gorm.io/driver/postgres
  - sqlite: modernc.org/sqlite through gorm.io/driver/sqlite (pool capped at one connection)

SQL statements are logged at debug level through slog-gorm and carry the
request id of the HTTP request that issued them.

# Migrations

Migrate runs gorm AutoMigrate over models.All(). The server only calls it
when started with --migrate (or RUN_MIGRATIONS=true); otherwise operators run

	adminctl migrate

# Tables

  - admins: id, name, email (unique), created_at, updated_at
*/
package db
