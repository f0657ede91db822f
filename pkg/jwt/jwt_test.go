package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestService() *Service {
	return NewService("test-secret-key", 15*time.Minute, 7*24*time.Hour)
}

func TestNewService(t *testing.T) {
	service := newTestService()

	assert.NotNil(t, service)
	assert.Equal(t, []byte("test-secret-key"), service.secretKey)
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("user-123", "user")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("user-123", "admin")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken("invalid-token")
	assert.Error(t, err)

	_, err = service.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-key-1", time.Minute, time.Hour)
	service2 := NewService("secret-key-2", time.Minute, time.Hour)

	token, err := service1.GenerateAccessToken("user-123", "user")
	assert.NoError(t, err)

	_, err = service2.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expiration(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("user-123", "user")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, time.Now().Before(claims.ExpiresAt.Time))
}

func TestValidateRefreshToken(t *testing.T) {
	service := newTestService()

	refresh, err := service.GenerateRefreshToken("user-123", "user")
	assert.NoError(t, err)

	claims, err := service.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	service := newTestService()

	access, err := service.GenerateAccessToken("user-123", "user")
	assert.NoError(t, err)

	_, err = service.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestRefreshToken_UniqueJTI(t *testing.T) {
	service := newTestService()

	t1, _ := service.GenerateRefreshToken("user-123", "user")
	t2, _ := service.GenerateRefreshToken("user-123", "user")

	c1, err := service.ValidateToken(t1)
	assert.NoError(t, err)
	c2, err := service.ValidateToken(t2)
	assert.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}
