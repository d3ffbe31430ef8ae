package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohitmore9417-afk/edua-ai/internals/configs"
)

func withSecrets(t *testing.T) {
	t.Helper()
	oldA, oldR := configs.JWTSecret, configs.JWTRefreshSecret
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	t.Cleanup(func() {
		configs.JWTSecret, configs.JWTRefreshSecret = oldA, oldR
	})
}

func TestIssueAccessTokenCarriesClaims(t *testing.T) {
	withSecrets(t)
	uid := uuid.New()

	raw, err := IssueAccessToken(uid, "dina", "teacher")
	require.NoError(t, err)

	claims := TokenClaims{}
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, uid.String(), claims.Subject)
	assert.Equal(t, "dina", claims.UserName)
	assert.Equal(t, "teacher", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, AccessTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	withSecrets(t)
	uid := uuid.New()

	raw, err := IssueRefreshToken(uid)
	require.NoError(t, err)

	got, err := ParseRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, uid, got)
}

func TestParseRefreshTokenRejectsAccessSecret(t *testing.T) {
	withSecrets(t)
	uid := uuid.New()

	// an access token is not a refresh token
	raw, err := IssueAccessToken(uid, "dina", "teacher")
	require.NoError(t, err)

	_, err = ParseRefreshToken(raw)
	assert.Error(t, err)
}

func TestParseRefreshTokenRejectsGarbage(t *testing.T) {
	withSecrets(t)
	_, err := ParseRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestIssueWithoutSecretFails(t *testing.T) {
	withSecrets(t)
	configs.JWTSecret = ""
	_, err := IssueAccessToken(uuid.New(), "x", "student")
	assert.Error(t, err)
}
