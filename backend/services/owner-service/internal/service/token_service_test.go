package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("secret", 0)

	signed, err := tokens.GenerateToken("owner-1")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.OwnerID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	signed, err := NewTokenService("other", time.Minute).GenerateToken("owner-1")
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Minute).ValidateToken(signed)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	claims := Claims{
		OwnerID: "owner-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Minute).ValidateToken(signed)
	assert.Error(t, err)
}

func TestTokenRequiresOwner(t *testing.T) {
	_, err := NewTokenService("secret", time.Minute).GenerateToken("")
	assert.Error(t, err)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenService("secret", time.Minute).ValidateToken(signed)
	assert.Error(t, err)
}
