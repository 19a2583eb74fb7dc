package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/api/http/response"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// ProfileService defines operations on the authenticated user's profile.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.User, error)
	Edit(ctx context.Context, userID uuid.UUID, params model.EditProfileParams) (model.User, error)
	UpdatePhoto(ctx context.Context, userID uuid.UUID, avatarURL string) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type Profile struct {
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{profileService: profileService, contextManager: contextManager, logger: logger}
}

type profileResponse struct {
	Message string   `json:"message,omitempty"`
	User    userView `json:"user"`
}

func (h *Profile) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(h.contextManager, r)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	user, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, profileResponse{User: newUserView(user)})
}

func (h *Profile) Edit(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(h.contextManager, r)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	var params model.EditProfileParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	user, err := h.profileService.Edit(r.Context(), userID, params)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, profileResponse{
		Message: "Profil berhasil diperbarui",
		User:    newUserView(user),
	})
}

type photoResponse struct {
	Message  string `json:"message"`
	PhotoURL string `json:"photoUrl"`
}

func (h *Profile) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(h.contextManager, r)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	var params model.UpdatePhotoParams
	if err := response.DecodeJSON(w, r, &params); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	photoURL, err := h.profileService.UpdatePhoto(r.Context(), userID, params.AvatarURL)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, photoResponse{Message: "Avatar berhasil diperbarui", PhotoURL: photoURL})
}

// Delete removes the account together with its transactions and receipts.
func (h *Profile) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(h.contextManager, r)
	if err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	if err := h.profileService.Delete(r.Context(), userID); err != nil {
		response.WriteError(w, h.logger, err)
		return
	}

	h.logger.Info("Profile handler: account deleted",
		"user_id", userID)

	response.WriteJSON(w, http.StatusOK, messageResponse{Message: "Akun berhasil dihapus"})
}
