package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/admin-gate/cliparse"
	"github.com/danielhkuo/admin-gate/db"
	"github.com/danielhkuo/admin-gate/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration; a missing secret stops us here, before any listener exists
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Info("Configuration loaded", "config", cfg)

	// Connect to the database
	gdb, err := db.Open(db.OptionsFromConfig(cfg), logger)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Migrations are an operator decision; off unless asked for
	if cfg.Migrate {
		if err := db.Migrate(gdb); err != nil {
			slog.Error("schema migration failed", "error", err)
			db.Close(gdb)
			os.Exit(1)
		}
		slog.Info("Database schema migrated")
	}

	// Create server
	server := &http.Server{
		Handler:           router.NewRouter(gdb, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("failed to listen", "error", err)
		db.Close(gdb)
		os.Exit(1)
	}

	// Ctrl-C or SIGTERM starts a graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(ctx, server, ln); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// serve runs server on ln until ctx is done, then shuts it down and
// returns only after in-flight requests have finished or the shutdown
// timeout has passed.
func serve(ctx context.Context, server *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
