package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/api/http/response"
	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// MaxReceiptBytes caps a single receipt upload.
const MaxReceiptBytes = 5 << 20

// TransactionService defines owner-scoped transaction operations.
type TransactionService interface {
	Create(ctx context.Context, ownerID uuid.UUID, params model.TransactionParams) (model.Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Transaction, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.Transaction, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, params model.TransactionParams) (model.Transaction, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	UploadReceipt(ctx context.Context, ownerID, id uuid.UUID, reader io.Reader, contentType string) (model.Transaction, error)
	DownloadReceipt(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error)
}

type Transaction struct {
	transactionService TransactionService
	contextManager     model.ContextManager
	logger             *logger.Logger
}

func NewTransaction(transactionService TransactionService, contextManager model.ContextManager, logger *logger.Logger) *Transaction {
	return &Transaction{transactionService: transactionService, contextManager: contextManager, logger: logger}
}

type transactionResponse struct {
	Message string          `json:"message"`
	Data    transactionView `json:"data"`
}

type transactionListResponse struct {
	Message string            `json:"message"`
	Data    []transactionView `json:"data"`
}

// owned resolves the session owner and, when withID is set, the {id} path variable.
func (h *Transaction) owned(r *http.Request, withID bool) (ownerID, id uuid.UUID, err error) {
	ownerID, err = sessionUserID(h.contextManager, r)
	if err != nil || !withID {
		return ownerID, uuid.Nil, err
	}
	id, err = pathID(r)
	return ownerID, id, err
}

func (h *Transaction) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, _, err := h.owned(r, false)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	var params model.TransactionParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	t, err := h.transactionService.Create(r.Context(), ownerID, params)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, transactionResponse{
		Message: "Transaksi berhasil ditambahkan",
		Data:    newTransactionView(t),
	})
}

func (h *Transaction) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _, err := h.owned(r, false)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	transactions, err := h.transactionService.List(r.Context(), ownerID)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	views := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, newTransactionView(t))
	}

	response.WriteJSON(w, http.StatusOK, transactionListResponse{
		Message: "Berhasil mendapatkan daftar transaksi",
		Data:    views,
	})
}

func (h *Transaction) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, id, err := h.owned(r, true)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	t, err := h.transactionService.Get(r.Context(), ownerID, id)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, transactionResponse{
		Message: "Berhasil mendapatkan detail transaksi",
		Data:    newTransactionView(t),
	})
}

func (h *Transaction) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, id, err := h.owned(r, true)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	var params model.TransactionParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	t, err := h.transactionService.Update(r.Context(), ownerID, id, params)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, transactionResponse{
		Message: "Transaksi berhasil diperbarui",
		Data:    newTransactionView(t),
	})
}

func (h *Transaction) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, id, err := h.owned(r, true)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	if err := h.transactionService.Delete(r.Context(), ownerID, id); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, messageResponse{Message: "Transaksi berhasil dihapus"})
}

// UploadReceipt accepts the raw receipt bytes as the request body.
func (h *Transaction) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID, id, err := h.owned(r, true)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxReceiptBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteError(w, h.logger, apierror.NewErrReceiptTooLarge())
			return
		}
		response.WriteError(w, h.logger, apierror.NewErrInvalidRequestBody())
		return
	}
	if len(body) == 0 {
		response.WriteError(w, h.logger, apierror.NewErrInvalidRequestBody())
		return
	}

	t, err := h.transactionService.UploadReceipt(r.Context(), ownerID, id, bytes.NewReader(body), receiptContentType(r, body))
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	h.logger.Info("Transaction handler: receipt uploaded",
		"transaction_id", id,
		"size", len(body))

	response.WriteJSON(w, http.StatusOK, transactionResponse{
		Message: "Struk berhasil diunggah",
		Data:    newTransactionView(t),
	})
}

func (h *Transaction) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID, id, err := h.owned(r, true)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	reader, err := h.transactionService.DownloadReceipt(r.Context(), ownerID, id)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}
	defer reader.Close()

	// Buffered so the content type can be sniffed before the status is written.
	body, err := io.ReadAll(io.LimitReader(reader, MaxReceiptBytes))
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(body))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// receiptContentType prefers the declared media type and sniffs the body otherwise.
func receiptContentType(r *http.Request, body []byte) string {
	if declared := r.Header.Get("Content-Type"); declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return mediaType
		}
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(body))
	return mediaType
}
