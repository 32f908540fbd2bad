package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/domain/user"
	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// UserRepository implements user.Repository for SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Duplicate emails return repository.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.CreatedAt,
	)
	if err != nil {
		if translated := translateErr(err); errors.Is(translated, repository.ErrDuplicate) {
			return translated
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getWhere(ctx, `email = ?`, email)
}

func (r *UserRepository) getWhere(ctx context.Context, where string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// List returns all users, oldest first.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, created_at FROM users ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListProjectUsers returns the project owner plus every member.
func (r *UserRepository) ListProjectUsers(ctx context.Context, projectID string) ([]user.User, error) {
	query := `
		SELECT DISTINCT u.id, u.email, u.name, u.created_at
		FROM users u
		WHERE u.id IN (SELECT user_id FROM projects WHERE id = ?)
		   OR u.id IN (SELECT user_id FROM project_members WHERE project_id = ?)
		ORDER BY u.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]user.User, error) {
	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
