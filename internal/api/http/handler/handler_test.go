package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/dokugo-server/internal/api/http/context"
	"github.com/dtroode/dokugo-server/internal/model"
)

func newJSONRequest(method, target, body string) *http.Request {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withSession attaches the session the authenticate middleware would have set.
func withSession(req *http.Request, cm *httpcontext.Manager, userID uuid.UUID) *http.Request {
	ctx := cm.SetSessionToContext(req.Context(), model.SessionClaims{UserID: userID})
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

