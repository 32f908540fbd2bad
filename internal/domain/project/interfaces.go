package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	// ListForUser returns projects the user owns or is a member of,
	// most recently updated first, with task references attached.
	ListForUser(ctx context.Context, userID string) ([]ProjectWithTasks, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error
	// HasAccess reports whether the user is the project owner or a member.
	HasAccess(ctx context.Context, projectID, userID string) (bool, error)
}
