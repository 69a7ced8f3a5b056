// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"

	"github.com/danielhkuo/admin-gate/models"
	"github.com/danielhkuo/admin-gate/store"
)

var (
	ErrInvalidSharedSecret = errors.New("invalid shared secret")
	ErrNotAuthorized       = errors.New("not authorized")
)

// ValidateSharedSecret checks the presented secret against the expected one.
// Both values are hashed first so the comparison time depends on neither
// their contents nor their lengths. An empty expected secret never matches.
func ValidateSharedSecret(provided, expected string) error {
	if expected == "" {
		return ErrInvalidSharedSecret
	}
	got := sha256.Sum256([]byte(provided))
	want := sha256.Sum256([]byte(expected))
	if !hmac.Equal(got[:], want[:]) {
		return ErrInvalidSharedSecret
	}
	return nil
}

// AdminFinder looks up an admin by email.
type AdminFinder interface {
	FindByEmail(ctx context.Context, email string) (models.Admin, error)
}

// AuthorizeAdmin returns the admin registered under email, or
// ErrNotAuthorized when there is none. Other errors come from the store
// and are returned unchanged.
func AuthorizeAdmin(ctx context.Context, finder AdminFinder, email string) (models.Admin, error) {
	admin, err := finder.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.Admin{}, ErrNotAuthorized
	}
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}
