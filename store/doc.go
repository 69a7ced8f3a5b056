// Package store is the data-access layer for admin records.
//
// Lookups normalize the email with models.NormalizeEmail, matching the
// normalization applied when rows are written, so matching is
// case-insensitive. Unique-constraint failures from either Postgres or
// SQLite surface as ErrDuplicateEmail.
package store
