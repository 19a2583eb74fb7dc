// Package response writes JSON bodies and maps service errors to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes an APIError as is. Any other error becomes a generic
// 500 and only its cause is logged.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		log.Error("unexpected error while handling request",
			"error", err.Error())
		apiErr = apierror.NewErrInternalServerError(err)
	} else if apiErr.Status >= http.StatusInternalServerError {
		log.Error("request failed",
			"code", apiErr.Code,
			"error", apiErr.Error())
	}

	WriteJSON(w, apiErr.Status, ErrorBody{Error: apiErr.Message, Code: apiErr.Code})
}

// DecodeJSON reads a size-limited JSON body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apierror.NewErrInvalidRequestBody()
	}
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
