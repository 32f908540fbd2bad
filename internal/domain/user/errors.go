package user

import "errors"

var (
	// ErrUserNotFound indicates no user matches the id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound indicates the project doesn't exist or the
	// caller has no access to it.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid user fields.
	ErrInvalidInput = errors.New("invalid user input")
)
