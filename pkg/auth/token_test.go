package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmoreno/bazaar-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bazaar-test",
		ExpirationMinutes: 5,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	userID := uuid.New()
	signed, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID:   userID,
		Email:    "buyer@example.com",
		IsBuyer:  true,
		IsVendor: false,
		JTI:      "session-1",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(testJWTConfig(), signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.True(t, claims.IsBuyer)
	assert.False(t, claims.IsVendor)
	assert.Equal(t, "session-1", claims.ID)
}

func TestMintRequiresUserID(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{})
	require.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "different"
	_, err = ParseAccessToken(other, signed)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig(), time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig(), signed)
	require.Error(t, err)

	claims, err := ParseAccessTokenAllowExpired(testJWTConfig(), signed)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestBothRoleFlagsMayBeSet(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		IsVendor: true,
		IsBuyer:  true,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(testJWTConfig(), signed)
	require.NoError(t, err)
	assert.True(t, claims.IsVendor)
	assert.True(t, claims.IsBuyer)
}
