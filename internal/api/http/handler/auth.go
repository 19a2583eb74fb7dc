package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/dokugo-server/internal/api/http/response"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// AuthService defines the credential lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, params model.LoginParams) (string, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, params model.ForgotPasswordParams) error
	VerifyOTP(ctx context.Context, params model.VerifyOTPParams) (string, error)
	ResetPassword(ctx context.Context, params model.ResetPasswordParams) error
}

// Auth handles the public authentication endpoints and logout.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

type registerResponse struct {
	Message string   `json:"message"`
	Data    userView `json:"data"`
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var params model.RegisterParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"username", params.Username)

	user, err := h.authService.Register(r.Context(), params)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, registerResponse{
		Message: "User berhasil didaftarkan",
		Data:    newUserView(user),
	})
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var params model.LoginParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	token, err := h.authService.Login(r.Context(), params)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, loginResponse{Message: "Login berhasil", Token: token})
}

// Logout revokes the bearer token the request was authenticated with.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), response.BearerToken(r)); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logout berhasil"})
}

func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var params model.ForgotPasswordParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, messageResponse{Message: "Kode OTP telah dikirim ke email Anda"})
}

type verifyOTPResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

func (h *Auth) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var params model.VerifyOTPParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	resetToken, err := h.authService.VerifyOTP(r.Context(), params)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, verifyOTPResponse{Message: "OTP valid", ResetToken: resetToken})
}

func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var params model.ResetPasswordParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, messageResponse{Message: "Password berhasil diubah"})
}
