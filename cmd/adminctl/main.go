// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command adminctl manages admin records out of band.
//
//	adminctl [-d URL] [-t postgres|sqlite] migrate
//	adminctl add -name NAME -email EMAIL
//	adminctl remove -id ID
//	adminctl list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/admin-gate/cliparse"
	"github.com/danielhkuo/admin-gate/db"
	"github.com/danielhkuo/admin-gate/models"
	"github.com/danielhkuo/admin-gate/store"
)

var errUsage = errors.New("usage: adminctl [-d url] [-t type] [-env-file path] migrate|add|remove|list [flags]")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("adminctl failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var opts db.Options
	var envFile string

	fs := flag.NewFlagSet("adminctl", flag.ContinueOnError)
	fs.StringVar(&opts.URL, "d", "", "Database URL")
	fs.StringVar(&opts.Type, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&envFile, "env-file", "", "Path to a dotenv file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cliparse.LoadEnvFile(envFile); err != nil {
		return err
	}

	if opts.URL == "" {
		opts.URL = os.Getenv("DATABASE_URL")
	}
	if opts.URL == "" {
		return cliparse.ErrMissingDatabaseURL
	}
	if opts.Type == "" {
		opts.Type = os.Getenv("DATABASE_TYPE")
	}
	if opts.Type == "" {
		opts.Type = cliparse.DatabasePostgres
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	gdb, err := db.Open(opts, slog.Default())
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	admins := store.NewAdminStore(gdb)

	switch rest[0] {
	case "migrate":
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		fmt.Fprintln(out, "schema up to date")
		return nil
	case "add":
		return addAdmin(ctx, admins, rest[1:], out)
	case "remove":
		return removeAdmin(ctx, admins, rest[1:], out)
	case "list":
		return listAdmins(ctx, admins, out)
	default:
		return errUsage
	}
}

func addAdmin(ctx context.Context, admins *store.AdminStore, args []string, out io.Writer) error {
	var name, email string

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringVar(&name, "name", "", "Display name")
	fs.StringVar(&email, "email", "", "Email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email = models.NormalizeEmail(email)
	if err := validator.New().Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	if name == "" {
		return errors.New("name is required")
	}

	admin, err := admins.Create(ctx, name, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added admin %d %s <%s>\n", admin.ID, admin.Name, admin.Email)
	return nil
}

func removeAdmin(ctx context.Context, admins *store.AdminStore, args []string, out io.Writer) error {
	var id uint

	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.UintVar(&id, "id", 0, "Admin id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == 0 {
		return errors.New("id is required")
	}

	if err := admins.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed admin %d\n", id)
	return nil
}

func listAdmins(ctx context.Context, admins *store.AdminStore, out io.Writer) error {
	list, err := admins.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, a := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", a.ID, a.Name, a.Email)
	}
	return tw.Flush()
}
