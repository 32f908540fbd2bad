package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// TaskRepository implements task.Repository for SQLite.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, project_id, assignee_id, created_at, updated_at`

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.ProjectID,
		t.AssigneeID,
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", translateErr(err))
	}

	return nil
}

// Get retrieves a task by ID, scoped to its project.
func (r *TaskRepository) Get(ctx context.Context, projectID, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND project_id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, projectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// ListByProject returns all tasks for a project, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// Update rewrites the mutable task columns. The project binding never changes.
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, assignee_id = ?, updated_at = ?
		WHERE id = ? AND project_id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.AssigneeID,
		t.UpdatedAt,
		t.ID,
		t.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", translateErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateStatus changes only the status and the updated timestamp, then
// returns the resulting row.
func (r *TaskRepository) UpdateStatus(ctx context.Context, projectID, id string, status task.Status) (*task.Task, error) {
	query := `
		UPDATE tasks
		SET status = ?, updated_at = ?
		WHERE id = ? AND project_id = ?
	`

	res, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", translateErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.Get(ctx, projectID, id)
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, projectID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND project_id = ?`, id, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t                task.Task
		status, priority string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&status,
		&priority,
		&t.ProjectID,
		&t.AssigneeID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	return &t, nil
}
