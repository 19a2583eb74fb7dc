package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/dokugo-server/internal/model"
)

// TransactionStore is a mock type for the model.TransactionStore type.
type TransactionStore struct {
	mock.Mock
}

func (_m *TransactionStore) Create(ctx context.Context, transaction model.Transaction) (model.Transaction, error) {
	ret := _m.Called(ctx, transaction)
	return ret.Get(0).(model.Transaction), ret.Error(1)
}

func (_m *TransactionStore) GetByID(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Transaction), ret.Error(1)
}

func (_m *TransactionStore) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Transaction, error) {
	ret := _m.Called(ctx, ownerID)
	var r0 []model.Transaction
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Transaction)
	}
	return r0, ret.Error(1)
}

func (_m *TransactionStore) Update(ctx context.Context, transaction model.Transaction) (model.Transaction, error) {
	ret := _m.Called(ctx, transaction)
	return ret.Get(0).(model.Transaction), ret.Error(1)
}

func (_m *TransactionStore) SetReceiptKey(ctx context.Context, id uuid.UUID, key string) error {
	ret := _m.Called(ctx, id, key)
	return ret.Error(0)
}

func (_m *TransactionStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

var _ model.TransactionStore = (*TransactionStore)(nil)
