package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// RevocationStore is a mock type for the model.RevocationStore type.
type RevocationStore struct {
	mock.Mock
}

func (_m *RevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ret := _m.Called(ctx, token, expiresAt)
	return ret.Error(0)
}

func (_m *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	ret := _m.Called(ctx, token)
	return ret.Bool(0), ret.Error(1)
}

func (_m *RevocationStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ret := _m.Called(ctx, now)
	return ret.Get(0).(int64), ret.Error(1)
}

var _ model.RevocationStore = (*RevocationStore)(nil)
