package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Firstname    string
	Lastname     string
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Photo        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Firstname   string `json:"firstname" validate:"omitempty,min=2,max=30"`
	Lastname    string `json:"lastname" validate:"omitempty,min=2,max=30"`
	Username    string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email       string `json:"email" validate:"required,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=15"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
}

// LoginParams contains user credentials.
type LoginParams struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordParams contains parameters to set a new password.
type ResetPasswordParams struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// EditProfileParams contains profile fields to change. Empty fields are kept.
type EditProfileParams struct {
	Firstname   string `json:"firstname" validate:"omitempty,min=2,max=30"`
	Lastname    string `json:"lastname" validate:"omitempty,min=2,max=30"`
	Username    string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=15"`
}

// ForgotPasswordParams identifies the account a reset code is sent to.
type ForgotPasswordParams struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// VerifyOTPParams is a reset code presented for an account.
type VerifyOTPParams struct {
	Email string `json:"email" validate:"required,email,max=255"`
	OTP   string `json:"otp" validate:"required"`
}

// UpdatePhotoParams selects one of the provided avatars.
type UpdatePhotoParams struct {
	AvatarURL string `json:"avatarUrl"`
}
