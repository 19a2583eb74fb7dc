package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/dokugo-server/internal/api/http/context"
	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/model"
	"github.com/dtroode/dokugo-server/internal/testutil"
)

type stubTransactionService struct {
	transaction model.Transaction
	list        []model.Transaction
	err         error

	gotOwner       uuid.UUID
	gotID          uuid.UUID
	gotContentType string
	gotReceipt     []byte
	receipt        []byte
}

func (s *stubTransactionService) Create(_ context.Context, ownerID uuid.UUID, _ model.TransactionParams) (model.Transaction, error) {
	s.gotOwner = ownerID
	return s.transaction, s.err
}

func (s *stubTransactionService) List(_ context.Context, ownerID uuid.UUID) ([]model.Transaction, error) {
	s.gotOwner = ownerID
	return s.list, s.err
}

func (s *stubTransactionService) Get(_ context.Context, ownerID, id uuid.UUID) (model.Transaction, error) {
	s.gotOwner, s.gotID = ownerID, id
	return s.transaction, s.err
}

func (s *stubTransactionService) Update(_ context.Context, ownerID, id uuid.UUID, _ model.TransactionParams) (model.Transaction, error) {
	s.gotOwner, s.gotID = ownerID, id
	return s.transaction, s.err
}

func (s *stubTransactionService) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	s.gotOwner, s.gotID = ownerID, id
	return s.err
}

func (s *stubTransactionService) UploadReceipt(_ context.Context, ownerID, id uuid.UUID, reader io.Reader, contentType string) (model.Transaction, error) {
	s.gotOwner, s.gotID, s.gotContentType = ownerID, id, contentType
	s.gotReceipt, _ = io.ReadAll(reader)
	return s.transaction, s.err
}

func (s *stubTransactionService) DownloadReceipt(_ context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error) {
	s.gotOwner, s.gotID = ownerID, id
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(bytes.NewReader(s.receipt)), nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTransactionHandler(svc *stubTransactionService) (*Transaction, *httpcontext.Manager) {
	cm := httpcontext.NewManager()
	return NewTransaction(svc, cm, testutil.MakeNoopLogger()), cm
}

func TestTransaction_Create(t *testing.T) {
	owner := uuid.New()
	svc := &stubTransactionService{transaction: model.Transaction{
		ID:     uuid.New(),
		Amount: 25000,
		Type:   model.TransactionTypeExpense,
		Date:   time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
	}}
	h, cm := newTransactionHandler(svc)

	rec := httptest.NewRecorder()
	req := withSession(newJSONRequest(http.MethodPost, "/transactions", `{"amount":25000,"type":"expense"}`), cm, owner)
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, owner, svc.gotOwner)
	body := decodeBody(t, rec)
	assert.Equal(t, "Transaksi berhasil ditambahkan", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "2024-05-17", data["date"])
	assert.Equal(t, false, data["hasReceipt"])
}

func TestTransaction_List_EmptyIsArray(t *testing.T) {
	h, cm := newTransactionHandler(&stubTransactionService{})

	rec := httptest.NewRecorder()
	h.List(rec, withSession(newJSONRequest(http.MethodGet, "/transactions", ""), cm, uuid.New()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestTransaction_Get_InvalidID(t *testing.T) {
	h, cm := newTransactionHandler(&stubTransactionService{})

	req := withSession(newJSONRequest(http.MethodGet, "/transactions/nope", ""), cm, uuid.New())
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ID transaksi tidak valid", decodeBody(t, rec)["error"])
}

func TestTransaction_Get_NotFound(t *testing.T) {
	id := uuid.New()
	h, cm := newTransactionHandler(&stubTransactionService{err: apierror.NewErrTransactionNotFound()})

	req := withSession(newJSONRequest(http.MethodGet, "/transactions/"+id.String(), ""), cm, uuid.New())
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransaction_WithoutSession(t *testing.T) {
	h, _ := newTransactionHandler(&stubTransactionService{})

	rec := httptest.NewRecorder()
	h.List(rec, newJSONRequest(http.MethodGet, "/transactions", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransaction_UploadReceipt(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name            string
		contentType     string
		body            []byte
		wantStatus      int
		wantContentType string
	}{
		{
			name:            "declared type with parameters",
			contentType:     "image/jpeg; charset=binary",
			body:            []byte("jpeg-bytes"),
			wantStatus:      http.StatusOK,
			wantContentType: "image/jpeg",
		},
		{
			name:            "sniffed when undeclared",
			body:            pngHeader,
			wantStatus:      http.StatusOK,
			wantContentType: "image/png",
		},
		{
			name:        "empty body",
			contentType: "image/png",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "too large",
			contentType: "image/png",
			body:        bytes.Repeat([]byte{'x'}, MaxReceiptBytes+1),
			wantStatus:  http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTransactionService{transaction: model.Transaction{ID: id, ReceiptKey: "receipts/x"}}
			h, cm := newTransactionHandler(svc)

			req := httptest.NewRequest(http.MethodPut, "/transactions/"+id.String()+"/receipt", bytes.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			req = mux.SetURLVars(withSession(req, cm, uuid.New()), map[string]string{"id": id.String()})
			rec := httptest.NewRecorder()
			h.UploadReceipt(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantContentType, svc.gotContentType)
				assert.Equal(t, tt.body, svc.gotReceipt)
				assert.Equal(t, true, decodeBody(t, rec)["data"].(map[string]any)["hasReceipt"])
			}
		})
	}
}

func TestTransaction_DownloadReceipt(t *testing.T) {
	id := uuid.New()
	svc := &stubTransactionService{receipt: pngHeader}
	h, cm := newTransactionHandler(svc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/transactions/"+id.String()+"/receipt", nil), cm, uuid.New())
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.DownloadReceipt(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())
	assert.Equal(t, id, svc.gotID)
}

func TestTransaction_DownloadReceipt_Missing(t *testing.T) {
	id := uuid.New()
	h, cm := newTransactionHandler(&stubTransactionService{err: apierror.NewErrReceiptNotFound()})

	req := withSession(httptest.NewRequest(http.MethodGet, "/transactions/"+id.String()+"/receipt", nil), cm, uuid.New())
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.DownloadReceipt(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Struk tidak ditemukan", decodeBody(t, rec)["error"])
}
