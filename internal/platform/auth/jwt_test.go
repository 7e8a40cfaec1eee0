package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)

	userID := uuid.New()
	token, err := m.Generate(userID, "session-123", RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "session-123", claims.SessionID)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)
	token, err := m.Generate(uuid.New(), "session-123", RoleAdmin)
	require.NoError(t, err)

	other := NewJWTManager("different-secret", 15*time.Minute)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, err := m.Generate(uuid.New(), "session-123", RoleUser)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)
	_, err := m.Verify("not.a.token")
	assert.Error(t, err)
}
