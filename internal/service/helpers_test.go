package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/dokugo-server/internal/apierror"
)

func requireAPIError(t *testing.T, err error, status int, code string) *apierror.APIError {
	t.Helper()

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.Status)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
