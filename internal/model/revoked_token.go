package model

import (
	"context"
	"time"
)

// RevocationStore is the ledger of tokens invalidated before their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RevokedToken is a single ledger entry.
type RevokedToken struct {
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
