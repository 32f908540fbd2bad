package task

import "context"

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, projectID, id string) (*Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	UpdateStatus(ctx context.Context, projectID, id string, status Status) (*Task, error)
	Delete(ctx context.Context, projectID, id string) error
}

// ProjectAccess answers whether a user may see a project, as its owner
// or as a member of any role.
type ProjectAccess interface {
	HasAccess(ctx context.Context, projectID, userID string) (bool, error)
}
