package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrEmptyEmail = errors.New("admin email is required")

// Admin is a principal allowed into the admin area of the frontend.
// Rows are created and removed out of band (adminctl); the API only reads them.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Admin) TableName() string { return "admins" }

// BeforeSave normalizes the email so the unique index and lookups agree
// on a single spelling.
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = NormalizeEmail(a.Email)
	if a.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// All lists every model the migrator manages.
func All() []any {
	return []any{&Admin{}}
}
