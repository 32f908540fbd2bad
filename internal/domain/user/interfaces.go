package user

import "context"

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	// ListProjectUsers returns the project owner plus every member,
	// the set of valid task assignees.
	ListProjectUsers(ctx context.Context, projectID string) ([]User, error)
}

// ProjectAccess answers whether a user may see a project.
type ProjectAccess interface {
	HasAccess(ctx context.Context, projectID, userID string) (bool, error)
}
