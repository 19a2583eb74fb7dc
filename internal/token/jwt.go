package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/model"
)

// Claims represents JWT claims shared by session and reset tokens.
// Username and Email are only set on session tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	issuer    string
	audience  string
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey, issuer, audience string) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		now:       time.Now,
	}
}

const (
	typeSession = "session"
	typeReset   = "reset"
)

// GenerateSessionToken creates a session token for the user.
func (j *JWT) GenerateSessionToken(user model.User) (string, error) {
	now := j.now()
	claims := Claims{
		RegisteredClaims: j.registered(user.ID, now, model.SessionTokenDuration),
		Username:         user.Username,
		Email:            user.Email,
		TokenType:        typeSession,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// GenerateResetToken creates a password reset token bound to the user ID.
func (j *JWT) GenerateResetToken(userID uuid.UUID) (string, error) {
	now := j.now()
	claims := Claims{
		RegisteredClaims: j.registered(userID, now, model.ResetTokenDuration),
		TokenType:        typeReset,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates a session token and returns its claims.
func (j *JWT) ParseSessionToken(tokenString string) (model.SessionClaims, error) {
	claims, userID, err := j.parse(tokenString, typeSession)
	if err != nil {
		return model.SessionClaims{}, err
	}

	return model.SessionClaims{
		UserID:    userID,
		Username:  claims.Username,
		Email:     claims.Email,
		IssuedAt:  timeOf(claims.IssuedAt),
		ExpiresAt: timeOf(claims.ExpiresAt),
	}, nil
}

// ParseResetToken validates a reset token and returns its claims.
func (j *JWT) ParseResetToken(tokenString string) (model.ResetClaims, error) {
	claims, userID, err := j.parse(tokenString, typeReset)
	if err != nil {
		return model.ResetClaims{}, err
	}

	return model.ResetClaims{
		UserID:    userID,
		IssuedAt:  timeOf(claims.IssuedAt),
		ExpiresAt: timeOf(claims.ExpiresAt),
	}, nil
}

// ExpiryUnverified decodes the expiry claim without checking the signature.
func (j *JWT) ExpiryUnverified(tokenString string) (time.Time, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", model.ErrTokenMalformed)
	}

	return claims.ExpiresAt.Time, nil
}

func (j *JWT) registered(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		Issuer:    j.issuer,
		Audience:  jwt.ClaimStrings{j.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (j *JWT) parse(tokenString, tokenType string) (*Claims, uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, uuid.Nil, classify(err)
	}
	if claims.TokenType != tokenType {
		return nil, uuid.Nil, fmt.Errorf("%w: token type mismatch: %s", model.ErrTokenMalformed, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid subject: %v", model.ErrTokenMalformed, err)
	}

	return claims, userID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", model.ErrTokenInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
	}
}

func timeOf(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
