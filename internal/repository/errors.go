// Package repository defines the sentinel errors shared by every
// persistence adapter. Each domain package declares its own Repository
// interface; adapters translate driver errors into these sentinels so
// services can branch with errors.Is.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a uniqueness constraint fails,
	// such as a second membership row for the same (project, user).
	ErrDuplicate = errors.New("duplicate entity")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails at the
	// persistence boundary.
	ErrInvalidInput = errors.New("invalid input")
)
