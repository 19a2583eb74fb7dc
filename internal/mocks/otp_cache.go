package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// OTPCache is a mock type for the model.OTPCache type.
type OTPCache struct {
	mock.Mock
}

func (_m *OTPCache) Set(ctx context.Context, identity, code string, ttl time.Duration) error {
	ret := _m.Called(ctx, identity, code, ttl)
	return ret.Error(0)
}

func (_m *OTPCache) Consume(ctx context.Context, identity, code string) error {
	ret := _m.Called(ctx, identity, code)
	return ret.Error(0)
}

func (_m *OTPCache) Delete(ctx context.Context, identity string) error {
	ret := _m.Called(ctx, identity)
	return ret.Error(0)
}

var _ model.OTPCache = (*OTPCache)(nil)
