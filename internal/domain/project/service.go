package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sprintdeck/sprintdeck/internal/repository"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// Service handles project operations. The owning user always has full
// privilege without an explicit membership row.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description *string
}

// UpdateRequest defines project update inputs.
type UpdateRequest struct {
	Name        string
	Description *string
}

// List returns projects the user owns or is a member of.
func (s *Service) List(ctx context.Context, userID string) ([]ProjectWithTasks, error) {
	projects, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Get fetches a project the user can access.
func (s *Service) Get(ctx context.Context, userID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if proj.UserID != userID {
		ok, err := s.repo.HasAccess(ctx, id, userID)
		if err != nil {
			return nil, fmt.Errorf("checking project access: %w", err)
		}
		if !ok {
			return nil, ErrProjectNotFound
		}
	}
	return proj, nil
}

// Create creates a new project owned by the user.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Project, error) {
	if err := validate(req.Name, req.Description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	proj := &Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeDescription(req.Description),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", proj.ID, "user_id", userID)
	return proj, nil
}

// Update renames or re-describes a project. Owner only.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (*Project, error) {
	if err := validate(req.Name, req.Description); err != nil {
		return nil, err
	}

	proj, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	proj.Name = strings.TrimSpace(req.Name)
	proj.Description = normalizeDescription(req.Description)
	proj.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

// Delete removes a project and, through the schema cascade, its tasks
// and memberships. Owner only.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logger.Info("project deleted", "project_id", id, "user_id", userID)
	return nil
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if proj.UserID != userID {
		return nil, ErrAccessDenied
	}
	return proj, nil
}

func validate(name string, description *string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return ErrInvalidInput
	}
	if description != nil && len(*description) > maxDescriptionLen {
		return ErrInvalidInput
	}
	return nil
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
