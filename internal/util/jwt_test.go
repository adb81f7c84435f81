package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, expires, err := GenerateSessionToken("secret", 42, "sid-1", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := ParseSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateSessionToken("secret", 1, "sid", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", token)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid), "got %v", err)
}

func TestSessionToken_Tampered(t *testing.T) {
	token, _, err := GenerateSessionToken("secret", 1, "sid", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", token[:len(token)-2]+"xx")
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	claims := &SessionClaims{
		UserID:    1,
		SessionID: "sid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", token)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "got %v", err)
}

func TestSessionToken_MissingIDs(t *testing.T) {
	token, _, err := GenerateSessionToken("secret", 0, "", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", token)
	assert.True(t, errors.Is(err, jwt.ErrTokenInvalidClaims), "got %v", err)
}
