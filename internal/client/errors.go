package client

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is the generic failure for reads. Reads never carry
// server detail upward; callers show a retry affordance.
var ErrFetchFailed = errors.New("fetch failed")

// MutationError is the failure for writes. Message carries the
// server-provided explanation when one was present, notably the invite
// flow's "user not found" text.
type MutationError struct {
	StatusCode int
	Message    string
}

func (e *MutationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
