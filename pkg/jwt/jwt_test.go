package jwt

import (
	"testing"
	"time"

	"medisafe/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func TestTokenRoundTripCarriesRole(t *testing.T) {
	s := newTestService(time.Minute)
	subject := Subject{UserID: uuid.New(), Username: "drcruz", Email: "cruz@example.com", Role: "doctor"}

	token, tokenID, err := s.GenerateAccessToken(subject)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.TokenSubject())
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
	assert.Equal(t, "access_token:"+subject.UserID.String()+":"+tokenID, claims.StoreKey())
}

func TestSuperAdminStoreKey(t *testing.T) {
	s := newTestService(time.Minute)

	token, tokenID, err := s.GenerateRefreshToken(Subject{Username: "root", Role: "admin", SuperAdmin: true})
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.SuperAdmin)
	assert.Equal(t, "refresh_token:superadmin:"+tokenID, claims.StoreKey())
}

func TestValidateRejectsExpiredAndForeignTokens(t *testing.T) {
	expired, _, err := newTestService(-time.Minute).GenerateAccessToken(Subject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = newTestService(time.Minute).ValidateToken(expired)
	assert.Error(t, err)

	foreign, _, err := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute}).GenerateAccessToken(Subject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = newTestService(time.Minute).ValidateToken(foreign)
	assert.Error(t, err)
}
