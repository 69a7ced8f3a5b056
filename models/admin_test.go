package models

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ada@example.com", "ada@example.com"},
		{"Ada@Example.COM", "ada@example.com"},
		{"  ada@example.com\t", "ada@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAdminBeforeSave(t *testing.T) {
	a := &Admin{Name: " Ada ", Email: " ADA@example.com "}
	if err := a.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if a.Name != "Ada" || a.Email != "ada@example.com" {
		t.Errorf("BeforeSave() left %+v", a)
	}

	empty := &Admin{Name: "Nobody", Email: "  "}
	if err := empty.BeforeSave(nil); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("BeforeSave() error = %v, want ErrEmptyEmail", err)
	}
}

func TestNewAdminResponse(t *testing.T) {
	resp := NewAdminResponse(Admin{ID: 7, Name: "Ada", Email: "ada@example.com"})
	if resp.ID != 7 || resp.Name != "Ada" || resp.Email != "ada@example.com" {
		t.Errorf("NewAdminResponse() = %+v", resp)
	}
}
