package authentication

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hospital-connect/models"
)

// Token kinds carried in the "type" claim. An access token presented where
// a refresh token is expected is rejected, and vice versa.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// TokenService issues and verifies signed, time-bound JWTs. Verification is
// stateless: signature + expiry + kind, no server-side session table.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// Issue signs a token of the given kind for the user.
func (s *TokenService) Issue(user *models.User, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.UserClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssuePair mints a fresh access+refresh token pair.
func (s *TokenService) IssuePair(user *models.User) (access string, refresh string, err error) {
	access, err = s.Issue(user, TokenAccess, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.Issue(user, TokenRefresh, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify parses and validates a token, requiring the expected kind.
func (s *TokenService) Verify(tokenString, expectedKind string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedKind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
