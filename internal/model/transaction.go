package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionStore defines persistence operations for transactions.
type TransactionStore interface {
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (Transaction, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Transaction, error)
	Update(ctx context.Context, transaction Transaction) (Transaction, error)
	SetReceiptKey(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionType enumerates transaction kinds.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single financial transaction of a user.
type Transaction struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Amount     int64
	Type       TransactionType
	Category   int
	Date       time.Time
	Notes      string
	ReceiptKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransactionParams contains the user-editable transaction fields.
type TransactionParams struct {
	Amount   int64           `json:"amount" validate:"gte=0"`
	Type     TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category int             `json:"category" validate:"gte=0,lte=2147483647"`
	Date     string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes    string          `json:"notes" validate:"max=1000"`
}
