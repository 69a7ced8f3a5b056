// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/admin-gate/cliparse"
	"github.com/danielhkuo/admin-gate/middleware"
)

const pingTimeout = 5 * time.Second

// Options describes how to reach the database and size its pool.
type Options struct {
	Type            string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OptionsFromConfig copies the database settings out of the server config.
func OptionsFromConfig(cfg cliparse.Config) Options {
	return Options{
		Type:            cfg.DatabaseType,
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
}

// Open creates the connection pool, verifies it with a ping and wraps it
// in a gorm handle whose statements are logged through logger.
func Open(opts Options, logger *slog.Logger) (*gorm.DB, error) {
	driver, dialect, err := dialectFor(opts.Type)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := opts.MaxOpenConns
	// SQLite allows a single writer; more connections only produce SQLITE_BUSY
	if opts.Type == cliparse.DatabaseSQLite {
		maxOpen = 1
	}
	if maxOpen > 0 {
		conn.SetMaxOpenConns(maxOpen)
	}
	if opts.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	gdb, err := gorm.Open(dialect(conn), &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return gdb, nil
}

// Close releases every pooled connection.
func Close(gdb *gorm.DB) error {
	conn, err := gdb.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func dialectFor(dbType string) (string, func(*sql.DB) gorm.Dialector, error) {
	switch dbType {
	case cliparse.DatabasePostgres, "":
		return "postgres", func(conn *sql.DB) gorm.Dialector {
			return postgres.New(postgres.Config{Conn: conn})
		}, nil
	case cliparse.DatabaseSQLite:
		return "sqlite", func(conn *sql.DB) gorm.Dialector {
			return &sqlite.Dialector{DriverName: "sqlite", Conn: conn}
		}, nil
	default:
		return "", nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// SQL statements go out at debug level, tagged with the request id.
func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	return slogGorm.New(
		slogGorm.WithHandler(logger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.SetLogLevel(slogGorm.DefaultLogType, slog.LevelDebug),
		slogGorm.WithContextValue("request_id", middleware.RequestIDLogKey),
	)
}
