package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims CustomClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(username, role string) CustomClaims {
	return CustomClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
}

func TestParser_ParseToken_ValidCases(t *testing.T) {
	parser := NewParser(testSecret)

	tests := []struct {
		name     string
		username string
		role     string
	}{
		{name: "admin user", username: "admin_user", role: "admin"},
		{name: "super admin", username: "root", role: "super_admin"},
		{name: "regular user", username: "regular_user", role: "user"},
		{name: "user with email username", username: "user@domain.com", role: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := sign(t, testSecret, jwt.SigningMethodHS256, validClaims(tt.username, tt.role))

			claims, err := parser.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.role, claims.Role)
		})
	}
}

func TestParser_ParseToken_SubjectFallback(t *testing.T) {
	parser := NewParser(testSecret)
	claims := validClaims("", "user")
	claims.Subject = "from_sub"

	got, err := parser.ParseToken(sign(t, testSecret, jwt.SigningMethodHS256, claims))
	require.NoError(t, err)
	assert.Equal(t, "from_sub", got.Username)
}

func TestParser_ParseToken_InvalidTokens(t *testing.T) {
	parser := NewParser(testSecret)

	expired := validClaims("testuser", "user")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExp := validClaims("testuser", "user")
	noExp.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: sign(t, "other_secret", jwt.SigningMethodHS256, validClaims("testuser", "user"))},
		{name: "wrong method", token: sign(t, testSecret, jwt.SigningMethodHS512, validClaims("testuser", "user"))},
		{name: "expired", token: sign(t, testSecret, jwt.SigningMethodHS256, expired)},
		{name: "without expiration", token: sign(t, testSecret, jwt.SigningMethodHS256, noExp)},
		{name: "without username", token: sign(t, testSecret, jwt.SigningMethodHS256, validClaims("", "user"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := parser.ParseToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, ErrInvalidToken))
			assert.Contains(t, err.Error(), "jwt.ParseToken")
		})
	}
}
