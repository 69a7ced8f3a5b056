// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/danielhkuo/admin-gate/models"
)

// Migrate brings the schema up to date with the registered models.
// Safe to call multiple times; existing tables and indexes are kept.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
