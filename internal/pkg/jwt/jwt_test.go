package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", 7)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "secret")
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "tradelink-backend", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("secret", 7)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "another-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := GenerateSessionToken("secret", -1)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateSessionToken("not.a.token", "secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsNonAdminClaims(t *testing.T) {
	now := time.Now()
	claims := AdminClaims{
		IsAdmin: false,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
