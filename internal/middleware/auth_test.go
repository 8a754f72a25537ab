package middleware

import (
	"context"
	"testing"
	"time"

	"playto/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestUserIDFromToken(t *testing.T) {
	secret := "unit-test-secret"
	InitMiddleware(&config.Config{JWTSecret: secret})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		id, err := userIDFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		_, err := userIDFromToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := userIDFromToken(token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := userIDFromToken(token)
		assert.Error(t, err)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := userIDFromToken(token)
		assert.Error(t, err)
	})
}

func TestCheckRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	t.Run("disabled outside production", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		for i := 0; i < 10; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "r", "id", 1, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})

	t.Run("enforced in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "login", "user:1", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		allowed, err := CheckRateLimit(ctx, rdb, "login", "user:1", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		// A different caller has its own budget.
		allowed, err = CheckRateLimit(ctx, rdb, "login", "user:2", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window reset", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		for i := 0; i < 2; i++ {
			_, err := CheckRateLimit(ctx, rdb, "signup", "ip:1", 2, time.Minute)
			require.NoError(t, err)
		}
		allowed, err := CheckRateLimit(ctx, rdb, "signup", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		require.False(t, allowed)

		mr.FastForward(time.Minute + time.Second)
		allowed, err = CheckRateLimit(ctx, rdb, "signup", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("nil client errors", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := CheckRateLimit(ctx, nil, "r", "id", 1, time.Minute)
		assert.Error(t, err)
	})
}
