package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/repository"
)

// APIKeyRepository maps bearer tokens to user ids. Tokens are stored
// hashed; the raw token never touches the database.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository.
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// CreateKey registers a token for a user.
func (r *APIKeyRepository) CreateKey(ctx context.Context, token, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, user_id, created_at) VALUES (?, ?, ?)`,
		hashToken(token), userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", translateErr(err))
	}
	return nil
}

// ResolveUser returns the user id for a bearer token. Implements
// transport.UserResolver.
func (r *APIKeyRepository) ResolveUser(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM api_keys WHERE key_hash = ?`,
		hashToken(token),
	).Scan(&userID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	return userID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
