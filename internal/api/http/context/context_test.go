package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/dokugo-server/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()
	session := model.SessionClaims{UserID: uuid.New(), Username: "abc123"}

	ctx := m.SetSessionToContext(context.Background(), session)

	got, ok := m.GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, session, got)
}

func TestManager_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetSessionFromContext(context.Background())
	assert.False(t, ok)
}
