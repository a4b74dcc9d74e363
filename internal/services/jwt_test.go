package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	service := NewJWTService("secret")

	t.Run("Should validate a generated token", func(t *testing.T) {
		tokenString, err := service.GenerateJWT("student@edu.ru")
		require.NoError(t, err)

		token, err := service.ValidateToken(tokenString)
		require.NoError(t, err)

		subject, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "student@edu.ru", subject)
	})

	t.Run("Should reject a token signed with another key", func(t *testing.T) {
		tokenString, err := NewJWTService("other-secret").GenerateJWT("student@edu.ru")
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)

		assert.Error(t, err)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		now := time.Now()
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "student@edu.ru",
			"iat": now.Add(-48 * time.Hour).Unix(),
			"exp": now.Add(-24 * time.Hour).Unix(),
		})
		tokenString, err := expired.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)

		assert.ErrorIs(t, err, ErrTokenIsExpired)
	})

	t.Run("Should reject garbage input", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")

		assert.Error(t, err)
	})
}
