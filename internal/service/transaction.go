package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

const dateLayout = "2006-01-02"

// ReceiptContentTypes are the receipt formats accepted for upload.
var ReceiptContentTypes = []string{"image/jpeg", "image/png", "application/pdf"}

type Transaction struct {
	store     model.TransactionStore
	storage   model.Storage
	validator *Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewTransaction(
	store model.TransactionStore,
	storage model.Storage,
	validator *Validator,
	logger *logger.Logger,
) *Transaction {
	return &Transaction{
		store:     store,
		storage:   storage,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Transaction) Create(ctx context.Context, ownerID uuid.UUID, params model.TransactionParams) (model.Transaction, error) {
	if err := s.validator.Struct(params); err != nil {
		return model.Transaction{}, err
	}

	t := model.Transaction{
		ID:      uuid.New(),
		OwnerID: ownerID,
	}
	s.apply(&t, params)

	saved, err := s.store.Create(ctx, t)
	if err != nil {
		s.logger.Error("Transaction service: failed to create transaction",
			"user_id", ownerID,
			"error", err.Error())
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return saved, nil
}

func (s *Transaction) List(ctx context.Context, ownerID uuid.UUID) ([]model.Transaction, error) {
	transactions, err := s.store.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions by owner id: %w", err)
	}

	return transactions, nil
}

// Get hides transactions of other owners behind the same not found error.
func (s *Transaction) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Transaction, error) {
	t, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Transaction{}, apierror.NewErrTransactionNotFound()
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to get transaction by id: %w", err)
	}

	if t.OwnerID != ownerID {
		return model.Transaction{}, apierror.NewErrTransactionNotFound()
	}

	return t, nil
}

func (s *Transaction) Update(ctx context.Context, ownerID, id uuid.UUID, params model.TransactionParams) (model.Transaction, error) {
	if err := s.validator.Struct(params); err != nil {
		return model.Transaction{}, err
	}

	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Transaction{}, err
	}
	s.apply(&t, params)

	saved, err := s.store.Update(ctx, t)
	if errors.Is(err, model.ErrNotFound) {
		return model.Transaction{}, apierror.NewErrTransactionNotFound()
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}

	return saved, nil
}

func (s *Transaction) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	err = s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrTransactionNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if t.ReceiptKey != "" {
		if err := s.storage.Delete(ctx, t.ReceiptKey); err != nil {
			s.logger.Warn("Transaction service: failed to delete receipt",
				"transaction_id", id,
				"key", t.ReceiptKey,
				"error", err.Error())
		}
	}

	return nil
}

// UploadReceipt stores the receipt object and links it to the transaction.
// A second upload replaces the first.
func (s *Transaction) UploadReceipt(ctx context.Context, ownerID, id uuid.UUID, reader io.Reader, contentType string) (model.Transaction, error) {
	if !slices.Contains(ReceiptContentTypes, contentType) {
		return model.Transaction{}, apierror.NewErrUnsupportedReceipt()
	}

	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Transaction{}, err
	}

	key := receiptKey(ownerID, id)
	if err := s.storage.Upload(ctx, key, reader, contentType); err != nil {
		s.logger.Error("Transaction service: failed to upload receipt",
			"transaction_id", id,
			"error", err.Error())
		return model.Transaction{}, fmt.Errorf("failed to upload receipt: %w", err)
	}

	err = s.store.SetReceiptKey(ctx, id, key)
	if errors.Is(err, model.ErrNotFound) {
		return model.Transaction{}, apierror.NewErrTransactionNotFound()
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to set receipt key: %w", err)
	}

	t.ReceiptKey = key
	return t, nil
}

// DownloadReceipt streams the receipt back. The caller closes the reader.
func (s *Transaction) DownloadReceipt(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error) {
	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if t.ReceiptKey == "" {
		return nil, apierror.NewErrReceiptNotFound()
	}

	reader, err := s.storage.Download(ctx, t.ReceiptKey)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierror.NewErrReceiptNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download receipt: %w", err)
	}

	return reader, nil
}

// apply copies validated params onto t. An empty date means today.
func (s *Transaction) apply(t *model.Transaction, params model.TransactionParams) {
	t.Amount = params.Amount
	t.Type = params.Type
	t.Category = params.Category
	t.Notes = params.Notes

	date, err := time.Parse(dateLayout, params.Date)
	if err != nil {
		now := s.now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	t.Date = date
}

func receiptKey(ownerID, id uuid.UUID) string {
	return fmt.Sprintf("receipts/%s/%s", ownerID, id)
}
