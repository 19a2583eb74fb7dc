package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/dokugo-server/internal/api/http/response"
	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// TokenService verifies session tokens.
type TokenService interface {
	VerifySession(ctx context.Context, token string) (model.SessionClaims, error)
}

// Authenticate validates bearer tokens and injects the session into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handler rejects requests without a valid, unrevoked session token.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.authenticate(r)
		if err != nil {
			response.WriteError(w, m.logger, err)
			return
		}

		ctx := m.contextManager.SetSessionToContext(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(r *http.Request) (model.SessionClaims, error) {
	token := response.BearerToken(r)
	if token == "" {
		return model.SessionClaims{}, apierror.NewErrMissingAuthorizationToken()
	}

	session, err := m.tokenService.VerifySession(r.Context(), token)
	if err != nil {
		if model.IsTokenError(err) {
			m.logger.Debug("Authenticate middleware: token rejected",
				"error", err.Error())
			return model.SessionClaims{}, apierror.NewErrInvalidAuthorizationToken(err)
		}
		return model.SessionClaims{}, err
	}

	return session, nil
}
