package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dtroode/dokugo-server/internal/api/http/handler"
	"github.com/dtroode/dokugo-server/internal/api/http/middleware"
	"github.com/dtroode/dokugo-server/internal/api/http/response"
	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// Router wires handlers and middleware into a gorilla/mux router.
type Router struct {
	authService        handler.AuthService
	profileService     handler.ProfileService
	transactionService handler.TransactionService
	tokenService       middleware.TokenService
	contextManager     model.ContextManager
	checks             map[string]handler.Pinger
	logger             *logger.Logger
}

func New(
	authService handler.AuthService,
	profileService handler.ProfileService,
	transactionService handler.TransactionService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	checks map[string]handler.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:        authService,
		profileService:     profileService,
		transactionService: transactionService,
		tokenService:       tokenService,
		contextManager:     contextManager,
		checks:             checks,
		logger:             logger,
	}
}

// Register builds the HTTP handler with every route and the middleware chain.
func (r *Router) Register() http.Handler {
	m := mux.NewRouter()
	m.NotFoundHandler = http.HandlerFunc(r.notFound)
	m.MethodNotAllowedHandler = http.HandlerFunc(r.methodNotAllowed)

	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handler(h)
	}

	r.registerHealthRoutes(m)
	r.registerAuthRoutes(m, protected)
	r.registerProfileRoutes(m, protected)
	r.registerTransactionRoutes(m, protected)

	m.Use(
		middleware.Recover(r.logger),
		middleware.Logging(r.logger),
		middleware.SecurityHeaders,
	)

	return m
}

func (r *Router) registerHealthRoutes(m *mux.Router) {
	h := handler.NewHealth(r.checks, r.logger)
	m.HandleFunc("/health", h.Live).Methods(http.MethodGet)
	m.HandleFunc("/ready", h.Ready).Methods(http.MethodGet)
}

func (r *Router) registerAuthRoutes(m *mux.Router, protected func(http.HandlerFunc) http.Handler) {
	h := handler.NewAuth(r.authService, r.logger)
	m.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	m.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	m.Handle("/logout", protected(h.Logout)).Methods(http.MethodPost)
	m.HandleFunc("/forgotPassword", h.ForgotPassword).Methods(http.MethodPost)
	m.HandleFunc("/verify-otp", h.VerifyOTP).Methods(http.MethodPost)
	m.HandleFunc("/resetPassword", h.ResetPassword).Methods(http.MethodPost)
}

func (r *Router) registerProfileRoutes(m *mux.Router, protected func(http.HandlerFunc) http.Handler) {
	h := handler.NewProfile(r.profileService, r.contextManager, r.logger)
	m.Handle("/profile", protected(h.Get)).Methods(http.MethodGet)
	m.Handle("/profile", protected(h.Delete)).Methods(http.MethodDelete)
	m.Handle("/profile/edit", protected(h.Edit)).Methods(http.MethodPut)
	m.Handle("/profile/photo", protected(h.UpdatePhoto)).Methods(http.MethodPost)
}

func (r *Router) registerTransactionRoutes(m *mux.Router, protected func(http.HandlerFunc) http.Handler) {
	h := handler.NewTransaction(r.transactionService, r.contextManager, r.logger)
	m.Handle("/transactions", protected(h.Create)).Methods(http.MethodPost)
	m.Handle("/transactions", protected(h.List)).Methods(http.MethodGet)
	m.Handle("/transactions/{id}", protected(h.Get)).Methods(http.MethodGet)
	m.Handle("/transactions/{id}", protected(h.Update)).Methods(http.MethodPut)
	m.Handle("/transactions/{id}", protected(h.Delete)).Methods(http.MethodDelete)
	m.Handle("/transactions/{id}/receipt", protected(h.UploadReceipt)).Methods(http.MethodPut)
	m.Handle("/transactions/{id}/receipt", protected(h.DownloadReceipt)).Methods(http.MethodGet)
}

func (r *Router) notFound(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusNotFound, response.ErrorBody{Error: "Not Found", Code: apierror.CodeNotFound})
}

func (r *Router) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusMethodNotAllowed, response.ErrorBody{Error: "Method Not Allowed", Code: "METHOD_NOT_ALLOWED"})
}
