package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		u, err := NewUser("  Dana@Example.COM ", "Dana", "", "hash")
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", u.Email())
		assert.False(t, u.IsAdmin())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Dana", "", "hash")
		assert.Error(t, err)

		_, err = NewUser("dana@example.com", "", "", "hash")
		assert.Error(t, err)

		_, err = NewUser("dana@example.com", "Dana", "", "")
		assert.Error(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	u, err := NewUser("dana@example.com", "Dana", "", "hash")
	require.NoError(t, err)

	require.NoError(t, u.UpdateProfile("Dana K.", "https://img.example.com/dana.jpg"))
	assert.Equal(t, "Dana K.", u.Name())
	assert.Equal(t, "https://img.example.com/dana.jpg", u.AvatarURL())

	assert.Error(t, u.UpdateProfile("", ""))
}
