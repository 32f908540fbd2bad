package queries

import (
	"context"
	"log/slog"

	"github.com/sprintdeck/sprintdeck/internal/cache"
	"github.com/sprintdeck/sprintdeck/internal/client"
	"github.com/sprintdeck/sprintdeck/internal/domain/project"
)

// ProjectAPI is the slice of the REST client the project coordinator needs.
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]project.ProjectWithTasks, error)
	CreateProject(ctx context.Context, form client.ProjectForm) (*project.Project, error)
	UpdateProject(ctx context.Context, projectID string, form client.ProjectForm) (*project.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// Projects synchronizes the project list between server and cache.
type Projects struct {
	api    ProjectAPI
	store  *cache.Store
	logger *slog.Logger
}

// NewProjects creates a project coordinator.
func NewProjects(api ProjectAPI, store *cache.Store, logger *slog.Logger) *Projects {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projects{api: api, store: store, logger: logger}
}

// List returns the visible projects, from cache when fresh.
func (q *Projects) List(ctx context.Context) ([]project.ProjectWithTasks, error) {
	key := cache.ProjectsKey()
	if v, ok := q.store.Get(key); ok {
		return v.([]project.ProjectWithTasks), nil
	}

	rctx, done := q.store.BeginRead(ctx, key)
	defer done()

	projects, err := q.api.ListProjects(rctx)
	if cancelled(rctx, ctx) {
		if v, ok := q.store.Peek(key); ok {
			return v.([]project.ProjectWithTasks), nil
		}
		if err != nil {
			return nil, err
		}
		return projects, nil
	}
	if err != nil {
		return nil, err
	}

	q.store.Set(key, projects)
	return projects, nil
}

// Create creates a project and invalidates the project list.
func (q *Projects) Create(ctx context.Context, form client.ProjectForm) (*project.Project, error) {
	proj, err := q.api.CreateProject(ctx, form)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(cache.ProjectsKey())
	return proj, nil
}

// Update rewrites a project and invalidates the project list.
func (q *Projects) Update(ctx context.Context, projectID string, form client.ProjectForm) (*project.Project, error) {
	proj, err := q.api.UpdateProject(ctx, projectID, form)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(cache.ProjectsKey())
	return proj, nil
}

// Delete removes a project and invalidates every view that could hold
// its data.
func (q *Projects) Delete(ctx context.Context, projectID string) error {
	if err := q.api.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	q.store.Invalidate(
		cache.ProjectsKey(),
		cache.TasksKey(projectID),
		cache.MembersKey(projectID),
		cache.AssigneesKey(projectID),
	)
	return nil
}
