package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// SessionVerifier is a mock for the session check done by HTTP middleware.
type SessionVerifier struct {
	mock.Mock
}

func (_m *SessionVerifier) VerifySession(ctx context.Context, token string) (model.SessionClaims, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(model.SessionClaims), ret.Error(1)
}
