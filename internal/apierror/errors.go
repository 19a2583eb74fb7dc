// Package apierror defines the errors services return to API clients.
//
// Every APIError carries an HTTP status, a stable machine-readable code and a
// short human-readable message. The message is what clients see; the wrapped
// cause is only logged.
package apierror

import (
	"fmt"
	"net/http"
)

// Error codes, one per class of the error taxonomy.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeExpiredOrAbsent = "OTP_EXPIRED_OR_ABSENT"
	CodeMismatch        = "OTP_MISMATCH"
	CodeDelivery        = "DELIVERY_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// APIError is an error that is safe to show to a client.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newError(status int, code, message string, err error) *APIError {
	return &APIError{Status: status, Code: code, Message: message, Err: err}
}

func NewErrValidation(message string) *APIError {
	return newError(http.StatusBadRequest, CodeValidation, message, nil)
}

func NewErrEmailOrUsernameTaken() *APIError {
	return newError(http.StatusBadRequest, CodeConflict, "Email atau username sudah terdaftar", nil)
}

func NewErrEmailTaken() *APIError {
	return newError(http.StatusBadRequest, CodeConflict, "Email sudah digunakan", nil)
}

func NewErrUsernameTaken() *APIError {
	return newError(http.StatusBadRequest, CodeConflict, "Username sudah digunakan", nil)
}

func NewErrWrongEmail() *APIError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, "Email salah", nil)
}

func NewErrWrongPassword() *APIError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, "Password salah", nil)
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, "Token tidak ditemukan", nil)
}

func NewErrInvalidAuthorizationToken(err error) *APIError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, "Token tidak valid", err)
}

func NewErrUserNotFound() *APIError {
	return newError(http.StatusNotFound, CodeNotFound, "User tidak ditemukan", nil)
}

func NewErrEmailNotRegistered() *APIError {
	return newError(http.StatusNotFound, CodeNotFound, "Email tidak terdaftar", nil)
}

func NewErrTransactionNotFound() *APIError {
	return newError(http.StatusNotFound, CodeNotFound, "Transaksi tidak ditemukan", nil)
}

func NewErrReceiptNotFound() *APIError {
	return newError(http.StatusNotFound, CodeNotFound, "Struk tidak ditemukan", nil)
}

func NewErrOTPExpiredOrAbsent() *APIError {
	return newError(http.StatusBadRequest, CodeExpiredOrAbsent, "OTP tidak valid atau sudah kedaluwarsa", nil)
}

func NewErrOTPMismatch() *APIError {
	return newError(http.StatusBadRequest, CodeMismatch, "Kode OTP tidak valid", nil)
}

func NewErrAvatarMissing() *APIError {
	return newError(http.StatusBadRequest, CodeValidation, "Avatar URL tidak ditemukan", nil)
}

func NewErrInvalidAvatar() *APIError {
	return newError(http.StatusBadRequest, CodeValidation, "Avatar yang dipilih tidak valid", nil)
}

func NewErrDelivery(err error) *APIError {
	return newError(http.StatusInternalServerError, CodeDelivery, "Gagal mengirim email", err)
}

func NewErrInternalServerError(err error) *APIError {
	return newError(http.StatusInternalServerError, CodeInternal, "Internal Server Error", err)
}

func NewErrUnsupportedReceipt() *APIError {
	return newError(http.StatusBadRequest, CodeValidation, "Format struk tidak didukung", nil)
}

func NewErrInvalidTransactionID() *APIError {
	return newError(http.StatusBadRequest, CodeValidation, "ID transaksi tidak valid", nil)
}

func NewErrInvalidRequestBody() *APIError {
	return newError(http.StatusBadRequest, CodeValidation, "Body request tidak valid", nil)
}

func NewErrReceiptTooLarge() *APIError {
	return newError(http.StatusRequestEntityTooLarge, CodeValidation, "Ukuran struk terlalu besar", nil)
}
