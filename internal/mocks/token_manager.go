package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// TokenManager is a mock type for the model.TokenManager type.
type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) GenerateSessionToken(user model.User) (string, error) {
	ret := _m.Called(user)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) GenerateResetToken(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) ParseSessionToken(token string) (model.SessionClaims, error) {
	ret := _m.Called(token)
	return ret.Get(0).(model.SessionClaims), ret.Error(1)
}

func (_m *TokenManager) ParseResetToken(token string) (model.ResetClaims, error) {
	ret := _m.Called(token)
	return ret.Get(0).(model.ResetClaims), ret.Error(1)
}

func (_m *TokenManager) ExpiryUnverified(token string) (time.Time, error) {
	ret := _m.Called(token)
	return ret.Get(0).(time.Time), ret.Error(1)
}

var _ model.TokenManager = (*TokenManager)(nil)
