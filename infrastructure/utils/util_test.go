package utils_test

import (
	"testing"
	"time"

	"flickr-embed/infrastructure/utils"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	signed, err := utils.IssueToken("wiki-bot", time.Hour, "secret")
	require.NoError(t, err)

	var claims jwt.StandardClaims
	token, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "HS256", token.Method.Alg())
	assert.Equal(t, "wiki-bot", claims.Subject)
	assert.Equal(t, "flickr-embed", claims.Issuer)
	assert.Equal(t, int64(3600), claims.ExpiresAt-claims.IssuedAt)
}

func TestIssueToken_NoSecret(t *testing.T) {
	_, err := utils.IssueToken("wiki-bot", time.Hour, "")
	assert.ErrorIs(t, err, utils.ErrNoSecretKey)
}
