package model

import "context"

// ContextManager carries the authenticated session through request contexts.
type ContextManager interface {
	SetSessionToContext(ctx context.Context, session SessionClaims) context.Context
	GetSessionFromContext(ctx context.Context) (SessionClaims, bool)
}
