package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/dokugo-server/internal/model"
)

func newTestJWT() *JWT {
	return NewJWT("secret", "urn:issuer:api", "urn:audience:users")
}

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	user := model.User{ID: uuid.New(), Username: "abc123", Email: "a@b.com"}

	session, err := j.GenerateSessionToken(user)
	require.NoError(t, err)

	claims, err := j.ParseSessionToken(session)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "abc123", claims.Username)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, model.SessionTokenDuration, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWT_ResetToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	userID := uuid.New()

	reset, err := j.GenerateResetToken(userID)
	require.NoError(t, err)

	claims, err := j.ParseResetToken(reset)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.ResetTokenDuration, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := newTestJWT()
	userID := uuid.New()

	reset, err := j.GenerateResetToken(userID)
	require.NoError(t, err)
	_, err = j.ParseSessionToken(reset)
	require.ErrorIs(t, err, model.ErrTokenMalformed)

	session, err := j.GenerateSessionToken(model.User{ID: userID})
	require.NoError(t, err)
	_, err = j.ParseResetToken(session)
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_Expired(t *testing.T) {
	issuer := newTestJWT()
	issuer.now = func() time.Time { return time.Now().Add(-5 * time.Hour) }

	session, err := issuer.GenerateSessionToken(model.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = newTestJWT().ParseSessionToken(session)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_InvalidSignature(t *testing.T) {
	other := NewJWT("other-secret", "urn:issuer:api", "urn:audience:users")

	session, err := other.GenerateSessionToken(model.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = newTestJWT().ParseSessionToken(session)
	require.ErrorIs(t, err, model.ErrTokenInvalidSignature)
}

func TestJWT_WrongAlgorithm(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "urn:issuer:api",
			Audience:  jwt.ClaimStrings{"urn:audience:users"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: typeSession,
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWT().ParseSessionToken(unsigned)
	require.Error(t, err)
	assert.True(t, model.IsTokenError(err))
}

func TestJWT_Malformed(t *testing.T) {
	_, err := newTestJWT().ParseSessionToken("not-a-token")
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_ExpiryUnverified(t *testing.T) {
	other := NewJWT("other-secret", "urn:issuer:api", "urn:audience:users")
	session, err := other.GenerateSessionToken(model.User{ID: uuid.New()})
	require.NoError(t, err)

	exp, err := newTestJWT().ExpiryUnverified(session)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(model.SessionTokenDuration), exp, time.Minute)

	_, err = newTestJWT().ExpiryUnverified("garbage")
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}
