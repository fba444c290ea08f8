package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 24*time.Hour)

	tok, err := m.Generate(7, "a@b.com")
	require.NoError(t, err)

	c, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.UserID)
	assert.Equal(t, "a@b.com", c.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), c.Expiry, time.Minute)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	stale, err := m.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Generate(1, "x@y.com")
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", time.Hour).Generate(1, "x@y.com")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 1, "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":       stale,
		"bad signature": other,
		"alg none":      unsigned,
		"malformed":     "not.a.token",
		"empty":         "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
