package authentication

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-connect/models"
)

// Context keys set by the auth middleware.
const (
	ContextUser = "currentUser"
	ContextRole = "role"
)

// UserLoader loads an account by id so the middleware can re-check the
// record behind a token.
type UserLoader interface {
	FindByID(id uint) (*models.User, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

// AuthMiddleware verifies the access token, loads the account and rejects
// missing or inactive ones.
func AuthMiddleware(tokens *TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing the authorization header"})
			return
		}

		claims, err := tokens.Verify(tokenString, TokenAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInactiveAccount.Error()})
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextRole, user.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the identity when a valid access token is
// present and lets the request through either way.
func OptionalAuthMiddleware(tokens *TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(tokenString, TokenAccess)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextRole, user.Role)
		c.Next()
	}
}

// RequirePermission aborts with 403 unless the authenticated role grants
// the capability. Must run after AuthMiddleware.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if !HasPermission(role, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ErrPermissionDenied.Error()})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account set by the auth middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
