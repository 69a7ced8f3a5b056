// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/danielhkuo/admin-gate/cliparse"
	"github.com/danielhkuo/admin-gate/db"
	"github.com/danielhkuo/admin-gate/models"
	"github.com/danielhkuo/admin-gate/store"
)

// TestSharedSecret is the secret GetTestConfig configures
const TestSharedSecret = "test-shared-secret"

// SetupTestDB opens a fresh SQLite database with the full schema.
// The pool is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupTestDBWithLogger(t, slog.Default())
}

// SetupTestDBWithLogger is SetupTestDB with SQL statements logged to logger
func SetupTestDBWithLogger(t *testing.T, logger *slog.Logger) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Options{
		Type: cliparse.DatabaseSQLite,
		URL:  filepath.Join(t.TempDir(), "admin_gate_test.db"),
	}, logger)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(gdb); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return gdb
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  "file:test.db",
		DatabaseType: cliparse.DatabaseSQLite,
		SharedSecret: TestSharedSecret,
	}
}

// CreateTestAdmin inserts an admin and returns the stored record
func CreateTestAdmin(t *testing.T, gdb *gorm.DB, name, email string) models.Admin {
	t.Helper()

	admin, err := store.NewAdminStore(gdb).Create(context.Background(), name, email)
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return admin
}

// MakeRequest sends a JSON request through handler. A non-empty secret is
// sent in the X-Shared-Secret header.
func MakeRequest(t *testing.T, handler http.Handler, method, path, secret string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Shared-Secret", secret)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeDetail returns the detail field of an error response
func DecodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response %q: %v", w.Body.String(), err)
	}
	return resp.Detail
}
