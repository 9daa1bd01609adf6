package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-key-12345678901234567890"

func TestSignAndParseToken(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := SignToken(testSecret, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParseTokenFailuresAreUniform(t *testing.T) {
	userID := primitive.NewObjectID()
	valid, err := SignToken(testSecret, userID)
	require.NoError(t, err)

	expired := signRaw(t, jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}, testSecret)

	badSubject := signRaw(t, jwt.RegisteredClaims{
		Subject:   "not-a-hex-object-id",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.jwt"},
		{"empty", ""},
		{"wrong secret", signRaw(t, jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}, "some-other-secret")},
		{"expired", expired},
		{"subject not an object id", badSubject},
		{"tampered signature", tamper(valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(testSecret, tt.token)
			// every failure mode collapses to the same error
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

// tamper flips the last character of the signature.
func tamper(token string) string {
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	return token[:len(token)-1] + string(replacement)
}

func signRaw(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}
