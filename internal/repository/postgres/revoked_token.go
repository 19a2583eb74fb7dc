package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/dokugo-server/internal/model"
)

var _ model.RevocationStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	db *Connection
}

func NewRevokedTokenRepository(db *Connection) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

// Revoke records the token. Revoking the same token twice is a no-op.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	const query = `
        INSERT INTO revoked_tokens (token, expires_at, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (token) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, token, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)`

	var revoked bool
	if err := r.db.QueryRow(ctx, query, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return revoked, nil
}

// DeleteExpired drops entries whose token could no longer pass verification anyway.
func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at < $1`

	cmd, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired revoked tokens: %w", err)
	}
	return cmd.RowsAffected(), nil
}
