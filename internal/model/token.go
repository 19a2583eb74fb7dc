package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SessionTokenDuration is the lifetime of a session token.
	SessionTokenDuration = 4 * time.Hour
	// ResetTokenDuration is the lifetime of a password reset token.
	ResetTokenDuration = time.Hour
)

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	UserID    uuid.UUID
	Username  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ResetClaims are the verified contents of a password reset token.
type ResetClaims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager generates and validates session and reset tokens.
type TokenManager interface {
	GenerateSessionToken(user User) (string, error)
	GenerateResetToken(userID uuid.UUID) (string, error)
	ParseSessionToken(token string) (SessionClaims, error)
	ParseResetToken(token string) (ResetClaims, error)
	// ExpiryUnverified reads the exp claim without checking the signature.
	ExpiryUnverified(token string) (time.Time, error)
}
