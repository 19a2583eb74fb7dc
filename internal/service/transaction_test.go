package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/mocks"
	"github.com/dtroode/dokugo-server/internal/model"
	"github.com/dtroode/dokugo-server/internal/testutil"
)

func newTestTransaction() (*Transaction, *testutil.TransactionStore, *testutil.Storage) {
	store := testutil.NewTransactionStore()
	storage := testutil.NewStorage()
	s := NewTransaction(store, storage, NewValidator(), testutil.MakeNoopLogger())
	s.now = func() time.Time { return time.Date(2024, 5, 17, 13, 45, 0, 0, time.UTC) }
	return s, store, storage
}

func TestTransaction_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestTransaction()
	owner := uuid.New()

	created, err := s.Create(ctx, owner, model.TransactionParams{
		Amount: 25000, Type: model.TransactionTypeExpense, Category: 3, Date: "2024-05-01", Notes: "makan",
	})
	require.NoError(t, err)
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), created.Date)

	got, err := s.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), got.Amount)

	_, err = s.Get(ctx, uuid.New(), created.ID)
	requireAPIError(t, err, http.StatusNotFound, apierror.CodeNotFound)

	_, err = s.Get(ctx, owner, uuid.New())
	requireAPIError(t, err, http.StatusNotFound, apierror.CodeNotFound)
}

func TestTransaction_Create_DefaultsDateToToday(t *testing.T) {
	s, _, _ := newTestTransaction()

	created, err := s.Create(context.Background(), uuid.New(), model.TransactionParams{Type: model.TransactionTypeIncome})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), created.Date)
}

func TestTransaction_Create_Validation(t *testing.T) {
	s, _, _ := newTestTransaction()

	_, err := s.Create(context.Background(), uuid.New(), model.TransactionParams{Type: "gift"})
	requireAPIError(t, err, http.StatusBadRequest, apierror.CodeValidation)
}

func TestTransaction_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestTransaction()
	owner := uuid.New()

	first, err := s.Create(ctx, owner, model.TransactionParams{Type: model.TransactionTypeIncome, Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = s.Create(ctx, owner, model.TransactionParams{Type: model.TransactionTypeExpense, Date: "2024-02-01"})
	require.NoError(t, err)
	_, err = s.Create(ctx, uuid.New(), model.TransactionParams{Type: model.TransactionTypeExpense})
	require.NoError(t, err)

	list, err := s.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := s.Update(ctx, owner, first.ID, model.TransactionParams{Amount: 99, Type: model.TransactionTypeExpense, Date: "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), updated.Amount)
	assert.Equal(t, model.TransactionTypeExpense, updated.Type)

	_, err = s.Update(ctx, uuid.New(), first.ID, model.TransactionParams{Type: model.TransactionTypeExpense})
	requireAPIError(t, err, http.StatusNotFound, apierror.CodeNotFound)
}

func TestTransaction_Receipt(t *testing.T) {
	ctx := context.Background()
	s, _, storage := newTestTransaction()
	owner := uuid.New()

	created, err := s.Create(ctx, owner, model.TransactionParams{Type: model.TransactionTypeExpense})
	require.NoError(t, err)

	_, err = s.DownloadReceipt(ctx, owner, created.ID)
	requireAPIError(t, err, http.StatusNotFound, apierror.CodeNotFound)

	_, err = s.UploadReceipt(ctx, owner, created.ID, strings.NewReader("gif"), "image/gif")
	requireAPIError(t, err, http.StatusBadRequest, apierror.CodeValidation)

	withReceipt, err := s.UploadReceipt(ctx, owner, created.ID, strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "receipts/"+owner.String()+"/"+created.ID.String(), withReceipt.ReceiptKey)

	_, err = s.DownloadReceipt(ctx, uuid.New(), created.ID)
	requireAPIError(t, err, http.StatusNotFound, apierror.CodeNotFound)

	rc, err := s.DownloadReceipt(ctx, owner, created.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Delete(ctx, owner, created.ID))
	ok, err := storage.Exists(ctx, withReceipt.ReceiptKey)
	require.NoError(t, err)
	assert.False(t, ok)

	requireAPIError(t, s.Delete(ctx, owner, created.ID), http.StatusNotFound, apierror.CodeNotFound)
}

func TestTransaction_UploadReceipt_StorageFailure(t *testing.T) {
	ctx := context.Background()
	store := &mocks.TransactionStore{}
	storage := &mocks.Storage{}
	s := NewTransaction(store, storage, NewValidator(), testutil.MakeNoopLogger())
	owner, id := uuid.New(), uuid.New()

	store.On("GetByID", mock.Anything, id).Return(model.Transaction{ID: id, OwnerID: owner}, nil)
	storage.On("Upload", mock.Anything, receiptKey(owner, id), mock.Anything, "image/png").Return(errors.New("minio down"))

	_, err := s.UploadReceipt(ctx, owner, id, strings.NewReader("png"), "image/png")
	require.Error(t, err)
	store.AssertNotCalled(t, "SetReceiptKey", mock.Anything, mock.Anything, mock.Anything)
}
