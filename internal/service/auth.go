package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/apierror"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/model"
)

// AuthOptions tune the auth flow.
type AuthOptions struct {
	OTPTTL          time.Duration
	DefaultPhotoURL string
}

type Auth struct {
	userStore    model.UserStore
	otpCache     model.OTPCache
	mailer       model.Mailer
	hasher       model.PasswordHasher
	tokenService *TokenService
	validator    *Validator
	opts         AuthOptions
	logger       *logger.Logger

	generateCode func() (string, error)
}

func NewAuth(
	userStore model.UserStore,
	otpCache model.OTPCache,
	mailer model.Mailer,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	validator *Validator,
	opts AuthOptions,
	logger *logger.Logger,
) *Auth {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = model.DefaultOTPDuration
	}

	return &Auth{
		userStore:    userStore,
		otpCache:     otpCache,
		mailer:       mailer,
		hasher:       hasher,
		tokenService: tokenService,
		validator:    validator,
		opts:         opts,
		logger:       logger,
		generateCode: generateOTP,
	}
}

// normalizeEmail gives the canonical identity of an account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	params.Email = normalizeEmail(params.Email)
	params.Username = strings.TrimSpace(params.Username)

	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email,
		"username", params.Username)

	if err := a.validator.Struct(params); err != nil {
		return model.User{}, err
	}

	taken, err := a.isTaken(ctx, params.Email, params.Username)
	if err != nil {
		a.logger.Error("Auth service: failed to check existing user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, err
	}
	if taken {
		a.logger.Info("Auth service: email or username already registered",
			"email", params.Email,
			"username", params.Username)
		return model.User{}, apierror.NewErrEmailOrUsernameTaken()
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.New(),
		Firstname:    params.Firstname,
		Lastname:     params.Lastname,
		Username:     params.Username,
		Email:        params.Email,
		PhoneNumber:  params.PhoneNumber,
		PasswordHash: hash,
		Photo:        a.opts.DefaultPhotoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrConflict) {
		// lost a race with a concurrent registration
		return model.User{}, apierror.NewErrEmailOrUsernameTaken()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", saved.ID)

	return saved, nil
}

func (a *Auth) isTaken(ctx context.Context, email, username string) (bool, error) {
	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, fmt.Errorf("failed to get user by email: %w", err)
	}

	_, err = a.userStore.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, fmt.Errorf("failed to get user by username: %w", err)
	}

	return false, nil
}

// Login returns a session token for valid credentials.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (string, error) {
	params.Email = normalizeEmail(params.Email)

	if err := a.validator.Struct(params); err != nil {
		return "", err
	}

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login with unknown email",
			"email", params.Email)
		return "", apierror.NewErrWrongEmail()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Compare(user.PasswordHash, params.Password) {
		a.logger.Info("Auth service: login with wrong password",
			"user_id", user.ID)
		return "", apierror.NewErrWrongPassword()
	}

	token, err := a.tokenService.IssueSession(user)
	if err != nil {
		return "", err
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return token, nil
}

// Logout revokes the presented token whether or not it is still valid.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apierror.NewErrMissingAuthorizationToken()
	}

	err := a.tokenService.Revoke(ctx, token)
	if model.IsTokenError(err) {
		return apierror.NewErrInvalidAuthorizationToken(err)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to revoke token",
			"error", err.Error())
		return err
	}

	return nil
}

// ForgotPassword mails a fresh reset code, replacing any earlier one.
func (a *Auth) ForgotPassword(ctx context.Context, params model.ForgotPasswordParams) error {
	params.Email = normalizeEmail(params.Email)

	if err := a.validator.Struct(params); err != nil {
		return err
	}

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrEmailNotRegistered()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	code, err := a.generateCode()
	if err != nil {
		return err
	}

	if err := a.otpCache.Set(ctx, params.Email, code, a.opts.OTPTTL); err != nil {
		a.logger.Error("Auth service: failed to store otp",
			"email", params.Email,
			"error", err.Error())
		return fmt.Errorf("failed to store otp: %w", err)
	}

	body, err := renderOTPEmail(displayName(user), code, a.opts.OTPTTL)
	if err != nil {
		return err
	}

	if err := a.mailer.Send(ctx, user.Email, otpSubject, body); err != nil {
		a.logger.Error("Auth service: failed to send otp email",
			"email", params.Email,
			"error", err.Error())
		return apierror.NewErrDelivery(err)
	}

	a.logger.Info("Auth service: otp sent",
		"user_id", user.ID)

	return nil
}

// VerifyOTP exchanges a matching code for a reset token. A wrong code
// leaves the stored one in place.
func (a *Auth) VerifyOTP(ctx context.Context, params model.VerifyOTPParams) (string, error) {
	params.Email = normalizeEmail(params.Email)
	params.OTP = strings.TrimSpace(params.OTP)

	if err := a.validator.Struct(params); err != nil {
		return "", err
	}

	err := a.otpCache.Consume(ctx, params.Email, params.OTP)
	if errors.Is(err, model.ErrOTPNotFound) {
		return "", apierror.NewErrOTPExpiredOrAbsent()
	}
	if errors.Is(err, model.ErrOTPMismatch) {
		a.logger.Info("Auth service: otp mismatch",
			"email", params.Email)
		return "", apierror.NewErrOTPMismatch()
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierror.NewErrUserNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := a.tokenService.IssueReset(user.ID)
	if err != nil {
		return "", err
	}

	a.logger.Info("Auth service: otp verified",
		"user_id", user.ID)

	return token, nil
}

// ResetPassword sets a new password for the subject of a reset token and
// then revokes the token.
func (a *Auth) ResetPassword(ctx context.Context, params model.ResetPasswordParams) error {
	if err := a.validator.Struct(params); err != nil {
		return err
	}

	claims, err := a.tokenService.VerifyReset(ctx, params.ResetToken)
	if model.IsTokenError(err) {
		return apierror.NewErrInvalidAuthorizationToken(err)
	}
	if err != nil {
		return err
	}

	_, err = a.userStore.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	hash, err := a.hasher.Hash(params.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.userStore.UpdatePassword(ctx, claims.UserID, hash)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.tokenService.RevokeUntil(ctx, params.ResetToken, claims.ExpiresAt); err != nil {
		a.logger.Warn("Auth service: failed to revoke used reset token",
			"user_id", claims.UserID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: password reset",
		"user_id", claims.UserID)

	return nil
}

func displayName(user model.User) string {
	if name := strings.TrimSpace(user.Firstname + " " + user.Lastname); name != "" {
		return name
	}
	return user.Username
}
