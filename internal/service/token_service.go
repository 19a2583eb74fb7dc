package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// TokenService issues and verifies tokens. It composes the TokenManager,
// which checks signatures and claims, with the RevocationStore, which
// remembers tokens invalidated before their expiry.
type TokenService struct {
	manager     model.TokenManager
	revocations model.RevocationStore
	logger      *logger.Logger
}

func NewTokenService(manager model.TokenManager, revocations model.RevocationStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, revocations: revocations, logger: logger}
}

func (s *TokenService) IssueSession(user model.User) (string, error) {
	token, err := s.manager.GenerateSessionToken(user)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

func (s *TokenService) IssueReset(userID uuid.UUID) (string, error) {
	token, err := s.manager.GenerateResetToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue reset: %w", err)
	}
	return token, nil
}

// VerifySession checks the token itself and then the revocation ledger.
func (s *TokenService) VerifySession(ctx context.Context, token string) (model.SessionClaims, error) {
	claims, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return model.SessionClaims{}, err
	}

	if err := s.CheckRevoked(ctx, token); err != nil {
		return model.SessionClaims{}, err
	}

	return claims, nil
}

func (s *TokenService) VerifyReset(ctx context.Context, token string) (model.ResetClaims, error) {
	claims, err := s.manager.ParseResetToken(token)
	if err != nil {
		return model.ResetClaims{}, err
	}

	if err := s.CheckRevoked(ctx, token); err != nil {
		return model.ResetClaims{}, err
	}

	return claims, nil
}

// CheckRevoked returns model.ErrTokenRevoked for tokens in the ledger.
func (s *TokenService) CheckRevoked(ctx context.Context, token string) error {
	revoked, err := s.revocations.IsRevoked(ctx, token)
	if err != nil {
		return fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return model.ErrTokenRevoked
	}
	return nil
}

// Revoke blacklists token until its own expiry. The signature is not
// checked, so anything shaped like a token with an exp claim can be revoked.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	expiresAt, err := s.manager.ExpiryUnverified(token)
	if err != nil {
		return err
	}

	return s.RevokeUntil(ctx, token, expiresAt)
}

func (s *TokenService) RevokeUntil(ctx context.Context, token string, expiresAt time.Time) error {
	if err := s.revocations.Revoke(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Debug("Token service: token revoked",
		"expires_at", expiresAt)

	return nil
}
