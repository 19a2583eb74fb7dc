package password

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/dokugo-server/internal/apierror"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, h.Compare(hash, "secret1"))
	assert.False(t, h.Compare(hash, "secret2"))
	assert.False(t, h.Compare("not-a-hash", "secret1"))
}

func TestBcrypt_SaltedHashesDiffer(t *testing.T) {
	h := NewBcrypt(MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcrypt_CostFloor(t *testing.T) {
	h := NewBcrypt(4)
	assert.Equal(t, MinCost, h.cost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 10)
}

func TestBcrypt_HashRejectsLongPassword(t *testing.T) {
	h := NewBcrypt(MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)

	// 25 three-byte runes pass a 72 character limit but not bcrypt's.
	_, err = h.Hash(strings.Repeat("€", 25))
	require.ErrorAs(t, err, &apiErr)
}
