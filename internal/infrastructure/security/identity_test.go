package security

import (
	"testing"
	"time"

	"github.com/alchemorsel/breadbook/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenReader(t *testing.T) {
	validClaims := jwt.RegisteredClaims{
		Subject:   "auth0|user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	t.Run("VerifiedMode_AcceptsValidSignature", func(t *testing.T) {
		reader := NewTokenReader(config.AuthConfig{JWTSecret: "topsecret"}, zap.NewNop())

		subject, err := reader.Subject(signedToken(t, "topsecret", validClaims))

		require.NoError(t, err)
		assert.Equal(t, "auth0|user-42", subject)
	})

	t.Run("VerifiedMode_RejectsWrongSecret", func(t *testing.T) {
		reader := NewTokenReader(config.AuthConfig{JWTSecret: "topsecret"}, zap.NewNop())

		_, err := reader.Subject(signedToken(t, "wrong", validClaims))

		assert.Error(t, err)
	})

	t.Run("VerifiedMode_RejectsExpiredToken", func(t *testing.T) {
		reader := NewTokenReader(config.AuthConfig{JWTSecret: "topsecret"}, zap.NewNop())
		expired := jwt.RegisteredClaims{
			Subject:   "auth0|user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}

		_, err := reader.Subject(signedToken(t, "topsecret", expired))

		assert.Error(t, err)
	})

	t.Run("UnverifiedMode_ReadsSubject", func(t *testing.T) {
		reader := NewTokenReader(config.AuthConfig{}, zap.NewNop())

		subject, err := reader.Subject(signedToken(t, "whatever", validClaims))

		require.NoError(t, err)
		assert.Equal(t, "auth0|user-42", subject)
	})

	t.Run("MissingSubject_IsRejected", func(t *testing.T) {
		reader := NewTokenReader(config.AuthConfig{}, zap.NewNop())
		noSubject := jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}

		_, err := reader.Subject(signedToken(t, "whatever", noSubject))

		assert.Error(t, err)
	})

	t.Run("GarbageToken_IsRejected", func(t *testing.T) {
		reader := NewTokenReader(config.AuthConfig{}, zap.NewNop())

		_, err := reader.Subject("not-a-token")

		assert.Error(t, err)
	})
}

func TestFromAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", FromAuthorizationHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", FromAuthorizationHeader("bearer abc.def.ghi"))
	assert.Empty(t, FromAuthorizationHeader("Basic dXNlcjpwYXNz"))
	assert.Empty(t, FromAuthorizationHeader(""))
	assert.Empty(t, FromAuthorizationHeader("Bearer "))
}
