package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist or the
	// caller has no access to it.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project fields.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrAccessDenied indicates the operation requires the project owner.
	ErrAccessDenied = errors.New("access denied")
)
