package member

import (
	"context"

	"github.com/sprintdeck/sprintdeck/internal/domain/project"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
)

// Repository provides persistence for project memberships.
type Repository interface {
	Add(ctx context.Context, m *Member) error
	Get(ctx context.Context, projectID, userID string) (*Member, error)
	// ListByProject returns memberships enriched with user directory fields.
	ListByProject(ctx context.Context, projectID string) ([]Info, error)
	Remove(ctx context.Context, projectID, userID string) error
}

// ProjectStore provides the project lookups needed for permission checks.
type ProjectStore interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	HasAccess(ctx context.Context, projectID, userID string) (bool, error)
}

// UserDirectory resolves users for invites and member additions.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
