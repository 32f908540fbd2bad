package task

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
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// Service handles task operations for project owners and members.
type Service struct {
	repo     Repository
	projects ProjectAccess
	logger   *slog.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, projects ProjectAccess, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, projects: projects, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	AssigneeID  *string
}

// UpdateRequest defines task update inputs. The project binding is
// immutable and is therefore not part of the request.
type UpdateRequest struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	AssigneeID  *string
}

// List returns all tasks for a project the user can access.
func (s *Service) List(ctx context.Context, userID, projectID string) ([]Task, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Get fetches a single task.
func (s *Service) Get(ctx context.Context, userID, projectID, taskID string) (*Task, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	t, err := s.repo.Get(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// Create creates a task in the project. Status defaults to TODO and
// priority to MEDIUM when unset.
func (s *Service) Create(ctx context.Context, userID, projectID string, req CreateRequest) (*Task, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}

	if req.Status == "" {
		req.Status = StatusTodo
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if err := s.validate(ctx, projectID, req.Title, req.Description, req.Status, req.Priority, req.AssigneeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: normalizeDescription(req.Description),
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   projectID,
		AssigneeID:  req.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Info("task created", "task_id", t.ID, "project_id", projectID, "user_id", userID)
	return t, nil
}

// Update replaces the mutable fields of a task.
func (s *Service) Update(ctx context.Context, userID, projectID, taskID string, req UpdateRequest) (*Task, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, projectID, req.Title, req.Description, req.Status, req.Priority, req.AssigneeID); err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}

	t.Title = strings.TrimSpace(req.Title)
	t.Description = normalizeDescription(req.Description)
	t.Status = req.Status
	t.Priority = req.Priority
	t.AssigneeID = req.AssigneeID
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return t, nil
}

// UpdateStatus performs a status-only transition, the write behind a
// kanban drop. Only status and the updated timestamp change.
func (s *Service) UpdateStatus(ctx context.Context, userID, projectID, taskID string, status Status) (*Task, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	t, err := s.repo.UpdateStatus(ctx, projectID, taskID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task status: %w", err)
	}

	s.logger.Info("task status updated", "task_id", taskID, "project_id", projectID, "status", status)
	return t, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, userID, projectID, taskID string) error {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, projectID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (s *Service) authorize(ctx context.Context, projectID, userID string) error {
	ok, err := s.projects.HasAccess(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("checking project access: %w", err)
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

func (s *Service) validate(ctx context.Context, projectID, title string, description *string, status Status, priority Priority, assigneeID *string) error {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLen {
		return ErrInvalidInput
	}
	if description != nil && len(*description) > maxDescriptionLen {
		return ErrInvalidInput
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	if assigneeID != nil && *assigneeID != "" {
		ok, err := s.projects.HasAccess(ctx, projectID, *assigneeID)
		if err != nil {
			return fmt.Errorf("checking assignee access: %w", err)
		}
		if !ok {
			return ErrInvalidAssignee
		}
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
