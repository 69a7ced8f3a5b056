// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/admin-gate/models"
)

var (
	ErrNotFound       = errors.New("admin not found")
	ErrDuplicateEmail = errors.New("admin email already exists")
)

// AdminStore reads and writes admin records through gorm. Every call runs
// on a pooled connection bound to ctx and returned when the call ends.
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// FindByEmail returns the admin whose normalized email matches exactly.
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		Take(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to query admin: %w", err)
	}
	return admin, nil
}

func (s *AdminStore) Create(ctx context.Context, name, email string) (models.Admin, error) {
	admin := models.Admin{Name: name, Email: email}
	err := s.db.WithContext(ctx).Create(&admin).Error
	if isUniqueViolation(err) {
		return models.Admin{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *AdminStore) Remove(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Admin{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all admins ordered by id.
func (s *AdminStore) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("id").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// Ping runs a trivial query on a pooled connection.
func (s *AdminStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		// Without extended result codes only the primary code is set
		return code&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}
