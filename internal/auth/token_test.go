package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifaleee/MetroArt/internal/auth"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	token, err := tm.Issue("user-123", "claramonet")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "claramonet", claims.Username)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	valid, err := tm.Issue("user-123", "claramonet")
	require.NoError(t, err)

	expired, err := auth.NewTokenManager(testSecret, -time.Minute).Issue("user-123", "claramonet")
	require.NoError(t, err)

	foreign, err := auth.NewTokenManager("other-secret", time.Hour).Issue("user-123", "claramonet")
	require.NoError(t, err)

	// Same claims, signed with the "none" algorithm.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage", "not.a.jwt"},
		{"expired", expired},
		{"wrong secret", foreign},
		{"tampered payload", valid[:len(valid)-4] + "xxxx"},
		{"unsigned alg", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Verify(tt.token)
			require.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}
