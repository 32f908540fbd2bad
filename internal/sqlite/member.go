package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// MemberRepository implements member.Repository for SQLite.
type MemberRepository struct {
	db *DB
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db *DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Add inserts a membership row. Duplicate (project, user) pairs return
// repository.ErrDuplicate.
func (r *MemberRepository) Add(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO project_members (project_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, m.ProjectID, m.UserID, string(m.Role), m.CreatedAt)
	if err != nil {
		if translated := translateErr(err); errors.Is(translated, repository.ErrDuplicate) ||
			errors.Is(translated, repository.ErrForeignKeyViolation) {
			return translated
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// Get retrieves a membership row.
func (r *MemberRepository) Get(ctx context.Context, projectID, userID string) (*member.Member, error) {
	query := `
		SELECT project_id, user_id, role, created_at
		FROM project_members
		WHERE project_id = ? AND user_id = ?
	`

	var (
		m    member.Member
		role string
	)
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(
		&m.ProjectID,
		&m.UserID,
		&role,
		&m.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	m.Role = member.Role(role)
	return &m, nil
}

// ListByProject returns memberships joined with user directory fields.
func (r *MemberRepository) ListByProject(ctx context.Context, projectID string) ([]member.Info, error) {
	query := `
		SELECT u.id, u.email, u.name, m.role
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = ?
		ORDER BY m.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []member.Info
	for rows.Next() {
		var (
			info member.Info
			role string
		)
		if err := rows.Scan(&info.ID, &info.Email, &info.Name, &role); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		info.Role = member.Role(role)
		members = append(members, info)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// Remove deletes a membership row.
func (r *MemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
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
