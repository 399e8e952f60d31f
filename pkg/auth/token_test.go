package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhabites/kuha-web/pkg/config"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "kuha-web", ExpirationMinutes: 30}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()

	token, expiresAt, err := MintSessionToken(cfg, now, SessionPayload{Username: "wanjiru", Role: RoleStorefrontAdmin, SessionID: "sess-1"})
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(30*time.Minute), expiresAt, time.Second)

	claims, err := ParseSessionToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "wanjiru", claims.Username)
	assert.Equal(t, "wanjiru", claims.Subject)
	assert.Equal(t, RoleStorefrontAdmin, claims.Role)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestMintGeneratesSessionID(t *testing.T) {
	token, _, err := MintSessionToken(testConfig(), time.Now(), SessionPayload{Username: "admin", Role: RoleFoundationAdmin})
	require.NoError(t, err)

	claims, err := ParseSessionToken(testConfig(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsTamperedExpiredAndForeignIssuer(t *testing.T) {
	cfg := testConfig()

	token, _, err := MintSessionToken(cfg, time.Now(), SessionPayload{Username: "admin", Role: RoleFoundationAdmin})
	require.NoError(t, err)
	_, err = ParseSessionToken(cfg, token+"x")
	assert.Error(t, err)

	expired, _, err := MintSessionToken(cfg, time.Now().Add(-time.Hour), SessionPayload{Username: "admin", Role: RoleFoundationAdmin})
	require.NoError(t, err)
	_, err = ParseSessionToken(cfg, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other := cfg
	other.Issuer = "someone-else"
	foreign, _, err := MintSessionToken(other, time.Now(), SessionPayload{Username: "admin", Role: RoleFoundationAdmin})
	require.NoError(t, err)
	_, err = ParseSessionToken(cfg, foreign)
	assert.Error(t, err)
}

func TestMintValidatesInput(t *testing.T) {
	cfg := testConfig()
	_, _, err := MintSessionToken(cfg, time.Now(), SessionPayload{Username: "admin", Role: "owner"})
	assert.Error(t, err)

	_, _, err = MintSessionToken(cfg, time.Now(), SessionPayload{Username: " ", Role: RoleStorefrontAdmin})
	assert.Error(t, err)

	_, _, err = MintSessionToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, time.Now(), SessionPayload{Username: "a", Role: RoleStorefrontAdmin})
	assert.Error(t, err)
}
