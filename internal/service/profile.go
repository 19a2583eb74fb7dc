package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// DefaultPhotoURL is the photo every new account starts with.
func DefaultPhotoURL(avatarBaseURL string) string {
	return strings.TrimRight(avatarBaseURL, "/") + "/default.png"
}

// AvatarURLs lists the avatars a user may pick from.
func AvatarURLs(avatarBaseURL string) []string {
	base := strings.TrimRight(avatarBaseURL, "/")
	return []string{
		base + "/avatar1.png",
		base + "/avatar2.png",
		base + "/avatar3.png",
	}
}

type Profile struct {
	userStore        model.UserStore
	transactionStore model.TransactionStore
	storage          model.Storage
	otpCache         model.OTPCache
	validator        *Validator
	avatars          []string
	logger           *logger.Logger
}

func NewProfile(
	userStore model.UserStore,
	transactionStore model.TransactionStore,
	storage model.Storage,
	otpCache model.OTPCache,
	validator *Validator,
	avatarBaseURL string,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		userStore:        userStore,
		transactionStore: transactionStore,
		storage:          storage,
		otpCache:         otpCache,
		validator:        validator,
		avatars:          AvatarURLs(avatarBaseURL),
		logger:           logger,
	}
}

func (p *Profile) Get(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := p.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierror.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Edit applies the non-empty fields of params. An email change drops any
// reset code issued to the previous address.
func (p *Profile) Edit(ctx context.Context, userID uuid.UUID, params model.EditProfileParams) (model.User, error) {
	params.Email = normalizeEmail(params.Email)
	params.Username = strings.TrimSpace(params.Username)

	if err := p.validator.Struct(params); err != nil {
		return model.User{}, err
	}

	user, err := p.Get(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	previousEmail := user.Email

	if params.Email != "" && params.Email != user.Email {
		other, err := p.userStore.GetByEmail(ctx, params.Email)
		if err == nil && other.ID != userID {
			return model.User{}, apierror.NewErrEmailTaken()
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
		}
		user.Email = params.Email
	}

	if params.Username != "" && params.Username != user.Username {
		other, err := p.userStore.GetByUsername(ctx, params.Username)
		if err == nil && other.ID != userID {
			return model.User{}, apierror.NewErrUsernameTaken()
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
		}
		user.Username = params.Username
	}

	if params.Firstname != "" {
		user.Firstname = params.Firstname
	}
	if params.Lastname != "" {
		user.Lastname = params.Lastname
	}
	if params.PhoneNumber != "" {
		user.PhoneNumber = params.PhoneNumber
	}

	saved, err := p.userStore.Update(ctx, user)
	switch {
	case errors.Is(err, model.ErrConflict):
		return model.User{}, apierror.NewErrEmailOrUsernameTaken()
	case errors.Is(err, model.ErrNotFound):
		return model.User{}, apierror.NewErrUserNotFound()
	case err != nil:
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if saved.Email != previousEmail {
		p.dropOTP(ctx, userID, previousEmail)
	}

	p.logger.Info("Profile service: profile updated",
		"user_id", userID)

	return saved, nil
}

// UpdatePhoto sets one of the provided avatars as the user's photo.
func (p *Profile) UpdatePhoto(ctx context.Context, userID uuid.UUID, avatarURL string) (string, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return "", apierror.NewErrAvatarMissing()
	}
	if !slices.Contains(p.avatars, avatarURL) {
		return "", apierror.NewErrInvalidAvatar()
	}

	err := p.userStore.UpdatePhoto(ctx, userID, avatarURL)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierror.NewErrUserNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to update photo: %w", err)
	}

	return avatarURL, nil
}

// Delete removes the account with its transactions and receipt objects.
func (p *Profile) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := p.Get(ctx, userID)
	if err != nil {
		return err
	}

	transactions, err := p.transactionStore.GetByOwnerID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	err = p.userStore.Delete(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	p.dropOTP(ctx, userID, user.Email)

	for _, t := range transactions {
		if t.ReceiptKey == "" {
			continue
		}
		if err := p.storage.Delete(ctx, t.ReceiptKey); err != nil {
			p.logger.Warn("Profile service: failed to delete receipt of removed account",
				"user_id", userID,
				"key", t.ReceiptKey,
				"error", err.Error())
		}
	}

	p.logger.Info("Profile service: account deleted",
		"user_id", userID)

	return nil
}

// dropOTP removes a reset code that would otherwise stay valid for an
// address the account no longer owns.
func (p *Profile) dropOTP(ctx context.Context, userID uuid.UUID, email string) {
	if err := p.otpCache.Delete(ctx, email); err != nil {
		p.logger.Warn("Profile service: failed to drop otp of previous email",
			"user_id", userID,
			"error", err.Error())
	}
}
