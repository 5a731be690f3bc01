package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismobi/rental-server/internal/config"
	"github.com/sismobi/rental-server/internal/models"
)

func testManager() *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:      uuid.New(),
		Email:   "admin@example.com",
		IsAdmin: true,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := testManager()
	user := testUser()

	access, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "rental-server", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTManager(&config.JWTConfig{
		Secret:          "different-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	m := testManager()

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewJWTManager(&config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  -time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.Error(t, err)
}

func TestRefreshClaims(t *testing.T) {
	m := testManager()
	user := testUser()

	_, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)

	userID, err := m.RefreshClaims(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRefreshClaimsRejectsGarbage(t *testing.T) {
	m := testManager()

	_, err := m.RefreshClaims("garbage")
	assert.Error(t, err)
}
