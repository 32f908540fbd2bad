// Package queries coordinates the REST client and the cache: reads
// populate cache entries, writes invalidate every affected entry, and
// the task status change runs the optimistic snapshot/rollback path.
package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/cache"
	"github.com/sprintdeck/sprintdeck/internal/client"
	"github.com/sprintdeck/sprintdeck/internal/domain/task"
)

// TaskAPI is the slice of the REST client the task coordinator needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, projectID string) ([]task.Task, error)
	CreateTask(ctx context.Context, projectID string, form client.TaskForm) (*task.Task, error)
	UpdateTask(ctx context.Context, projectID, taskID string, form client.TaskForm) (*task.Task, error)
	DeleteTask(ctx context.Context, projectID, taskID string) error
	UpdateTaskStatus(ctx context.Context, projectID, taskID string, status task.Status) (*task.Task, error)
}

// Tasks synchronizes task collections between server and cache.
type Tasks struct {
	api    TaskAPI
	store  *cache.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewTasks creates a task coordinator.
func NewTasks(api TaskAPI, store *cache.Store, logger *slog.Logger) *Tasks {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tasks{api: api, store: store, logger: logger, now: time.Now}
}

// List returns the project's tasks, from cache when fresh. A read
// cancelled by a concurrent optimistic write never clobbers the cache;
// it serves whatever the cache holds instead.
func (q *Tasks) List(ctx context.Context, projectID string) ([]task.Task, error) {
	key := cache.TasksKey(projectID)
	if v, ok := q.store.Get(key); ok {
		return v.([]task.Task), nil
	}

	rctx, done := q.store.BeginRead(ctx, key)
	defer done()

	tasks, err := q.api.ListTasks(rctx, projectID)
	if cancelled(rctx, ctx) {
		if v, ok := q.store.Peek(key); ok {
			return v.([]task.Task), nil
		}
		if err != nil {
			return nil, err
		}
		return tasks, nil
	}
	if err != nil {
		return nil, err
	}

	q.store.Set(key, tasks)
	return tasks, nil
}

// Create creates a task and invalidates both the project's task list
// and the project list, whose summaries embed task counts.
func (q *Tasks) Create(ctx context.Context, projectID string, form client.TaskForm) (*task.Task, error) {
	t, err := q.api.CreateTask(ctx, projectID, form)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(cache.TasksKey(projectID), cache.ProjectsKey())
	return t, nil
}

// Update replaces a task's fields and invalidates the affected views.
func (q *Tasks) Update(ctx context.Context, projectID, taskID string, form client.TaskForm) (*task.Task, error) {
	t, err := q.api.UpdateTask(ctx, projectID, taskID, form)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(cache.TasksKey(projectID), cache.ProjectsKey())
	return t, nil
}

// Delete removes a task and invalidates the affected views.
func (q *Tasks) Delete(ctx context.Context, projectID, taskID string) error {
	if err := q.api.DeleteTask(ctx, projectID, taskID); err != nil {
		return err
	}
	q.store.Invalidate(cache.TasksKey(projectID), cache.ProjectsKey())
	return nil
}

// UpdateStatus runs the three-phase optimistic status change:
// cancel in-flight reads, optimistically rewrite the cached collection,
// then call the server. A failure restores the snapshot verbatim. The
// invalidation runs last in both outcomes so the next read reconciles
// with server truth.
func (q *Tasks) UpdateStatus(ctx context.Context, projectID, taskID string, status task.Status) error {
	key := cache.TasksKey(projectID)

	q.store.CancelReads(key)

	snapshot, hadCache := q.store.Snapshot(key)
	if hadCache {
		q.store.Set(key, withStatus(snapshot.([]task.Task), taskID, status, q.now()))
	}

	_, err := q.api.UpdateTaskStatus(ctx, projectID, taskID, status)
	if err != nil && hadCache {
		q.store.Restore(key, snapshot)
	}

	q.store.Invalidate(key, cache.ProjectsKey())

	if err != nil {
		q.logger.Error("task status update failed",
			"project_id", projectID, "task_id", taskID, "status", status, "error", err)
		return err
	}
	return nil
}

// withStatus returns a copy of tasks with the moved task's status and
// updated timestamp rewritten. The input slice is untouched so the
// snapshot stays valid for rollback.
func withStatus(tasks []task.Task, taskID string, status task.Status, now time.Time) []task.Task {
	next := make([]task.Task, len(tasks))
	copy(next, tasks)
	for i := range next {
		if next[i].ID == taskID {
			next[i].Status = status
			next[i].UpdatedAt = now
		}
	}
	return next
}

// cancelled reports whether the read context was cancelled by the store
// rather than by the caller.
func cancelled(rctx, ctx context.Context) bool {
	return rctx.Err() != nil && ctx.Err() == nil
}
