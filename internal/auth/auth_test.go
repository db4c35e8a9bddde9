package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokens_GenerateAndValidate(t *testing.T) {
	tok, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	s, err := tok.Generate(id, "admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, s)

	claims, err := tok.Validate(s)
	require.NoError(t, err)
	require.Equal(t, id, claims.UserID)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, "admin", claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokens_WrongSecret(t *testing.T) {
	a, err := NewTokens("secret1", 0)
	require.NoError(t, err)
	b, err := NewTokens("secret2", 0)
	require.NoError(t, err)

	s, err := a.Generate(uuid.New(), "u", "user")
	require.NoError(t, err)

	_, err = b.Validate(s)
	require.Error(t, err)
}

func TestTokens_Expired(t *testing.T) {
	tok, err := NewTokens("secret", time.Minute)
	require.NoError(t, err)

	s, err := tok.Generate(uuid.New(), "u", "user")
	require.NoError(t, err)

	tok.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = tok.Validate(s)
	require.Error(t, err)
}

func TestTokens_Garbage(t *testing.T) {
	tok, err := NewTokens("secret", 0)
	require.NoError(t, err)

	_, err = tok.Validate("not-a-token")
	require.Error(t, err)
}

func TestNewTokens_EmptySecret(t *testing.T) {
	_, err := NewTokens("", time.Hour)
	require.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("rahasia")
	require.NoError(t, err)
	require.True(t, IsHashed(hash))

	require.True(t, VerifyPassword(hash, "rahasia"))
	require.False(t, VerifyPassword(hash, "salah"))

	// старые строки хранят пароль открытым текстом
	require.True(t, VerifyPassword("admin123", "admin123"))
	require.False(t, VerifyPassword("admin123", "admin124"))
	require.False(t, IsHashed("admin123"))
}
