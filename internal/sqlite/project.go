package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sprintdeck/sprintdeck/internal/domain/project"
	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, name, description, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Description,
		proj.UserID,
		proj.CreatedAt,
		proj.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", translateErr(err))
	}

	return nil
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&proj.Description,
		&proj.UserID,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// ListForUser returns projects owned by the user or where the user is a
// member, most recently updated first, with task references attached.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]project.ProjectWithTasks, error) {
	query := `
		SELECT
			p.id, p.name, p.description, p.user_id, p.created_at, p.updated_at,
			t.id, t.title, t.status, t.priority
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.user_id = ?
		   OR p.id IN (SELECT project_id FROM project_members WHERE user_id = ?)
		ORDER BY p.updated_at DESC, p.id, t.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var (
		projects []project.ProjectWithTasks
		index    = map[string]int{}
	)
	for rows.Next() {
		var (
			proj                          project.Project
			taskID, title, status, priority sql.NullString
		)
		err := rows.Scan(
			&proj.ID,
			&proj.Name,
			&proj.Description,
			&proj.UserID,
			&proj.CreatedAt,
			&proj.UpdatedAt,
			&taskID,
			&title,
			&status,
			&priority,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}

		i, seen := index[proj.ID]
		if !seen {
			projects = append(projects, project.ProjectWithTasks{Project: proj, Tasks: []project.TaskRef{}})
			i = len(projects) - 1
			index[proj.ID] = i
		}
		if taskID.Valid {
			projects[i].Tasks = append(projects[i].Tasks, project.TaskRef{
				ID:       taskID.String,
				Title:    title.String,
				Status:   status.String,
				Priority: priority.String,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update rewrites the mutable project columns.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query, proj.Name, proj.Description, proj.UpdatedAt, proj.ID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
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

// Delete removes a project; tasks and memberships cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

// HasAccess reports whether the user owns the project or holds a
// membership row of any role.
func (r *ProjectRepository) HasAccess(ctx context.Context, projectID, userID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM projects p
			WHERE p.id = ?
			  AND (p.user_id = ?
			       OR EXISTS(SELECT 1 FROM project_members m
			                 WHERE m.project_id = p.id AND m.user_id = ?))
		)
	`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, projectID, userID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check project access: %w", err)
	}
	return ok, nil
}
