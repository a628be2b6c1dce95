package authentication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-connect/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Name:  "Alice",
		Email: "alice@hospital.com",
		Role:  models.RoleDoctor,
	}
}

func TestIssueAndVerifyPair(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)

	access, refresh, err := svc.IssuePair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.Verify(access, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@hospital.com", claims.Email)
	assert.Equal(t, models.RoleDoctor, claims.Role)
	assert.Equal(t, TokenAccess, claims.TokenType)

	claims, err = svc.Verify(refresh, TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenRefresh, claims.TokenType)
}

func TestVerifyRejectsKindMismatch(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)

	access, refresh, err := svc.IssuePair(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(access, TokenRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify(refresh, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)

	token, err := svc.Issue(testUser(), TokenAccess, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)

	token, err := svc.Issue(testUser(), TokenAccess, time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token+"x", TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)
	other := NewTokenService("other-secret", 30*time.Minute, 7*24*time.Hour)

	token, err := svc.Issue(testUser(), TokenAccess, time.Minute)
	require.NoError(t, err)

	_, err = other.Verify(token, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
