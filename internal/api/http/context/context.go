package context

import (
	"context"

	"github.com/dtroode/dokugo-server/internal/model"
)

type sessionKey struct{}

// Manager stores the authenticated session in request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetSessionToContext(ctx context.Context, session model.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext reports false when no session was stored.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.SessionClaims, bool) {
	session, ok := ctx.Value(sessionKey{}).(model.SessionClaims)
	return session, ok
}

var _ model.ContextManager = (*Manager)(nil)
