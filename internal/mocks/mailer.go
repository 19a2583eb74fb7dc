package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// Mailer is a mock type for the model.Mailer type.
type Mailer struct {
	mock.Mock
}

func (_m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	ret := _m.Called(ctx, to, subject, htmlBody)
	return ret.Error(0)
}

var _ model.Mailer = (*Mailer)(nil)
