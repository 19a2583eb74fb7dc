package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// PasswordHasher is a mock type for the model.PasswordHasher type.
type PasswordHasher struct {
	mock.Mock
}

func (_m *PasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (_m *PasswordHasher) Compare(hash, password string) bool {
	ret := _m.Called(hash, password)
	return ret.Bool(0)
}

var _ model.PasswordHasher = (*PasswordHasher)(nil)
