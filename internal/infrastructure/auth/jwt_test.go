package auth

import (
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(maxRefresh int) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-signing-secret-at-least-32ch",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "fieldsales-backend",
		MaxRefreshCount:        maxRefresh,
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		AgencyID: uuid.New(),
		UserID:   uuid.New(),
		Username: "jordan",
		Role:     "AGENT",
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(0)
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.AgencyID.String(), claims.AgencyID)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "jordan", claims.Username)
	assert.Equal(t, "AGENT", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	assert.Zero(t, refreshClaims.RefreshCount)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestService(0)

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService(0)

	_, err := svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshChain(t *testing.T) {
	svc := newTestService(2)
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	// First refresh: count moves from 0 to 1.
	pair, err = svc.RefreshTokenPair(pair.RefreshToken, input.Username, input.Role)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.RefreshCount)

	// Second refresh: count reaches the cap of 2.
	pair, err = svc.RefreshTokenPair(pair.RefreshToken, input.Username, input.Role)
	require.NoError(t, err)

	// The capped token can no longer be refreshed.
	_, err = svc.RefreshTokenPair(pair.RefreshToken, input.Username, input.Role)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}
