package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// Service handles user directory lookups.
type Service struct {
	repo     Repository
	projects ProjectAccess
	logger   *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, projects ProjectAccess, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, projects: projects, logger: logger}
}

// Register creates a user record. Called by the signup flow; the core
// uses it for seeding and tests.
func (s *Service) Register(ctx context.Context, email string, name *string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}

	u := &User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// List returns the full user directory.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetByEmail fetches a user by email, case-insensitively.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// Assignees returns the users a task in the project may be assigned to,
// the owner plus the members.
func (s *Service) Assignees(ctx context.Context, userID, projectID string) ([]User, error) {
	ok, err := s.projects.HasAccess(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("checking project access: %w", err)
	}
	if !ok {
		return nil, ErrProjectNotFound
	}

	users, err := s.repo.ListProjectUsers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project users: %w", err)
	}
	return users, nil
}
