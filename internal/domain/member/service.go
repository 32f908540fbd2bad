package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// Service handles project membership: listing, adding, removing, and
// inviting by email. The project owner holds OWNER privilege implicitly,
// with or without a membership row.
type Service struct {
	repo     Repository
	projects ProjectStore
	users    UserDirectory
	logger   *slog.Logger
}

// NewService creates a new member service.
func NewService(repo Repository, projects ProjectStore, users UserDirectory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, projects: projects, users: users, logger: logger}
}

// RoleOf resolves the user's role in the project. The owner is always
// OWNER regardless of membership rows.
func (s *Service) RoleOf(ctx context.Context, projectID, userID string) (Role, error) {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProjectNotFound
		}
		return "", fmt.Errorf("getting project: %w", err)
	}
	if proj.UserID == userID {
		return RoleOwner, nil
	}

	m, err := s.repo.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAccessDenied
		}
		return "", fmt.Errorf("getting membership: %w", err)
	}
	return m.Role, nil
}

// List returns all memberships for a project the user can access.
func (s *Service) List(ctx context.Context, userID, projectID string) ([]Info, error) {
	ok, err := s.projects.HasAccess(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("checking project access: %w", err)
	}
	if !ok {
		return nil, ErrProjectNotFound
	}

	members, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// Add attaches an existing user to the project. Requires owner or admin.
// An empty role defaults to MEMBER.
func (s *Service) Add(ctx context.Context, requesterID, projectID, targetUserID string, role Role) error {
	if err := s.requireManager(ctx, projectID, requesterID); err != nil {
		return err
	}
	if role == "" {
		role = RoleMember
	}
	if !role.Valid() {
		return ErrInvalidRole
	}

	if _, err := s.users.Get(ctx, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("getting user: %w", err)
	}

	return s.add(ctx, projectID, targetUserID, role)
}

// Invite adds the user with the given email as a MEMBER. The caller
// relies on ErrUserNotFound carrying a specific explanation when the
// email has no account.
func (s *Service) Invite(ctx context.Context, requesterID, projectID, email string) error {
	if err := s.requireManager(ctx, projectID, requesterID); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("getting user by email: %w", err)
	}

	if err := s.add(ctx, projectID, u.ID, RoleMember); err != nil {
		return err
	}

	s.logger.Info("user invited to project", "project_id", projectID, "email", email)
	return nil
}

// Remove detaches a member from the project. Requires owner or admin.
// The owner can never be removed through this path.
func (s *Service) Remove(ctx context.Context, requesterID, projectID, targetUserID string) error {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("getting project: %w", err)
	}
	if err := s.requireManager(ctx, projectID, requesterID); err != nil {
		return err
	}
	if proj.UserID == targetUserID {
		return ErrCannotRemoveOwner
	}

	if err := s.repo.Remove(ctx, projectID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotMember
		}
		return fmt.Errorf("removing member: %w", err)
	}

	s.logger.Info("member removed", "project_id", projectID, "user_id", targetUserID)
	return nil
}

func (s *Service) add(ctx context.Context, projectID, userID string, role Role) error {
	m := &Member{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Add(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("adding member: %w", err)
	}
	return nil
}

func (s *Service) requireManager(ctx context.Context, projectID, userID string) error {
	role, err := s.RoleOf(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return ErrAccessDenied
		}
		return err
	}
	if !role.CanManageMembers() {
		return ErrAccessDenied
	}
	return nil
}
