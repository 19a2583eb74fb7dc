package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/dokugo-server/internal/model"
)

var _ model.TransactionStore = (*TransactionRepository)(nil)

const transactionColumns = `id, owner_id, amount, type, category, date, notes, receipt_key, created_at, updated_at`

type TransactionRepository struct {
	db *Connection
}

func NewTransactionRepository(db *Connection) *TransactionRepository {
	return &TransactionRepository{
		db: db,
	}
}

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Amount, &t.Type, &t.Category, &t.Date,
		&t.Notes, &t.ReceiptKey, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TransactionRepository) Create(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	query := `
		INSERT INTO transactions (id, owner_id, amount, type, category, date, notes, receipt_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + transactionColumns

	saved, err := scanTransaction(r.db.QueryRow(ctx, query,
		t.ID, t.OwnerID, t.Amount, string(t.Type), t.Category, t.Date, t.Notes, t.ReceiptKey,
	))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", mapError(err))
	}

	return saved, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Transaction{}, mapError(err)
	}

	return t, nil
}

// GetByOwnerID lists the owner's transactions, newest date first.
func (r *TransactionRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]model.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = $2, type = $3, category = $4, date = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + transactionColumns

	saved, err := scanTransaction(r.db.QueryRow(ctx, query,
		t.ID, t.Amount, string(t.Type), t.Category, t.Date, t.Notes,
	))
	if err != nil {
		return model.Transaction{}, mapError(err)
	}

	return saved, nil
}

func (r *TransactionRepository) SetReceiptKey(ctx context.Context, id uuid.UUID, key string) error {
	const query = `UPDATE transactions SET receipt_key = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, key)
	if err != nil {
		return fmt.Errorf("failed to set receipt key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM transactions WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
