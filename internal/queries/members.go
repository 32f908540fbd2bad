package queries

import (
	"context"
	"log/slog"

	"github.com/sprintdeck/sprintdeck/internal/cache"
	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
)

// MemberAPI is the slice of the REST client the member coordinator needs.
type MemberAPI interface {
	ListProjectMembers(ctx context.Context, projectID string) ([]member.Info, error)
	ListProjectAssignees(ctx context.Context, projectID string) ([]user.User, error)
	InviteUser(ctx context.Context, projectID, email string) error
	AddProjectMember(ctx context.Context, projectID, userID string, role member.Role) error
	RemoveProjectMember(ctx context.Context, projectID, userID string) error
}

// Members synchronizes membership views between server and cache.
type Members struct {
	api    MemberAPI
	store  *cache.Store
	logger *slog.Logger
}

// NewMembers creates a member coordinator.
func NewMembers(api MemberAPI, store *cache.Store, logger *slog.Logger) *Members {
	if logger == nil {
		logger = slog.Default()
	}
	return &Members{api: api, store: store, logger: logger}
}

// List returns the project's members, from cache when fresh.
func (q *Members) List(ctx context.Context, projectID string) ([]member.Info, error) {
	key := cache.MembersKey(projectID)
	if v, ok := q.store.Get(key); ok {
		return v.([]member.Info), nil
	}

	members, err := q.api.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	q.store.Set(key, members)
	return members, nil
}

// Assignees returns the project's assignable users, from cache when fresh.
func (q *Members) Assignees(ctx context.Context, projectID string) ([]user.User, error) {
	key := cache.AssigneesKey(projectID)
	if v, ok := q.store.Get(key); ok {
		return v.([]user.User), nil
	}

	users, err := q.api.ListProjectAssignees(ctx, projectID)
	if err != nil {
		return nil, err
	}
	q.store.Set(key, users)
	return users, nil
}

// Invite invites an email to the project and invalidates the membership
// views. The invite's MutationError carries the server's "user not
// found" explanation when the email has no account.
func (q *Members) Invite(ctx context.Context, projectID, email string) error {
	if err := q.api.InviteUser(ctx, projectID, email); err != nil {
		return err
	}
	q.invalidate(projectID)
	return nil
}

// Add attaches an existing user and invalidates the membership views.
func (q *Members) Add(ctx context.Context, projectID, userID string, role member.Role) error {
	if err := q.api.AddProjectMember(ctx, projectID, userID, role); err != nil {
		return err
	}
	q.invalidate(projectID)
	return nil
}

// Remove detaches a member and invalidates the membership views.
func (q *Members) Remove(ctx context.Context, projectID, userID string) error {
	if err := q.api.RemoveProjectMember(ctx, projectID, userID); err != nil {
		return err
	}
	q.invalidate(projectID)
	return nil
}

func (q *Members) invalidate(projectID string) {
	q.store.Invalidate(cache.MembersKey(projectID), cache.AssigneesKey(projectID))
}
