package model

import (
	"context"
	"errors"
	"time"
)

// DefaultOTPDuration is the TTL of a password reset code.
const DefaultOTPDuration = 15 * time.Minute

var (
	ErrOTPNotFound = errors.New("otp not found or expired")
	ErrOTPMismatch = errors.New("otp does not match")
)

// OTPCache keeps at most one live one-time code per identity.
type OTPCache interface {
	// Set stores code for identity, replacing any previous code and its TTL.
	Set(ctx context.Context, identity, code string, ttl time.Duration) error
	// Consume deletes the code for identity if it equals code. It returns
	// ErrOTPNotFound when there is no live code and ErrOTPMismatch, leaving
	// the code in place, when it differs. Of concurrent callers presenting
	// the right code exactly one succeeds.
	Consume(ctx context.Context, identity, code string) error
	Delete(ctx context.Context, identity string) error
}
