package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpcontext "github.com/dtroode/dokugo-server/internal/api/http/context"
	"github.com/dtroode/dokugo-server/internal/mocks"
	"github.com/dtroode/dokugo-server/internal/model"
	"github.com/dtroode/dokugo-server/internal/testutil"
)

func TestAuthenticate_Handler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing authorization header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer expired",
			verifyErr:  model.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "revoked token",
			header:     "Bearer revoked",
			verifyErr:  model.ErrTokenRevoked,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ledger unavailable",
			header:     "Bearer token",
			verifyErr:  errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "valid token",
			header:     "Bearer token",
			wantStatus: http.StatusNoContent,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := httpcontext.NewManager()
			svc := &mocks.SessionVerifier{}
			if tt.header != "" && tt.header != "Basic abc" {
				svc.On("VerifySession", mock.Anything, mock.AnythingOfType("string")).
					Return(model.SessionClaims{UserID: userID}, tt.verifyErr)
			}

			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				session, ok := cm.GetSessionFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, session.UserID)
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			NewAuthenticate(svc, cm, testutil.MakeNoopLogger()).Handler(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			svc.AssertExpectations(t)
		})
	}
}

func TestLogging_PassesThroughStatus(t *testing.T) {
	h := Logging(testutil.MakeNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRecover(t *testing.T) {
	h := Recover(testutil.MakeNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
