package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToken(t *testing.T) {
	t.Parallel()

	cfg := TokenConfig{Secret: "s3cret", Issuer: "wordcards", Audience: "wordcards-api", TTL: time.Hour}

	signed, err := CreateToken(cfg, "local")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	assert.True(t, token.Valid)

	assert.Equal(t, "local", claims.Subject)
	assert.Equal(t, "wordcards", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"wordcards-api"}, claims.Audience)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestCreateTokenWithoutSecret(t *testing.T) {
	t.Parallel()

	_, err := CreateToken(TokenConfig{Issuer: "wordcards", TTL: time.Hour}, "local")
	assert.Error(t, err)
}
