package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"hospital-connect/authentication"
	"hospital-connect/models"
	"hospital-connect/repository"
)

var validate = validator.New()

// AuthController orchestrates login, registration, password management and
// token refresh.
type AuthController struct {
	Users  *repository.UserRepository
	Tokens *authentication.TokenService
	Mailer Mailer
}

func NewAuthController(users *repository.UserRepository, tokens *authentication.TokenService, mailer Mailer) *AuthController {
	return &AuthController{Users: users, Tokens: tokens, Mailer: mailer}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=6"`
	LicenseNumber   string `json:"license_number"`
	Specialty       string `json:"specialty"`
	Role            string `json:"role"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type passwordChangeRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,min=6"`
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type passwordResetConfirmRequest struct {
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,min=6"`
}

func (ac *AuthController) tokenPairResponse(c *gin.Context, user *models.User) {
	access, refresh, err := ac.Tokens.IssuePair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"expires_in":    int(ac.Tokens.AccessTTL().Seconds()),
		"user":          user,
	})
}

// Login authenticates credentials and returns an access+refresh pair.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authentication.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authentication.ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authentication.ErrInactiveAccount.Error()})
		return
	}

	ac.tokenPairResponse(c, user)
}

// Register creates a new account after uniqueness and password checks.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		LicenseNumber: req.LicenseNumber,
		Specialty:     req.Specialty,
	}
	if err := ac.Users.Create(user, req.Password); err != nil {
		if authentication.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The old
// refresh token stays valid until expiry; there is no rotation.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := ac.Tokens.Verify(req.RefreshToken, authentication.TokenRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authentication.ErrInvalidToken.Error()})
		return
	}

	user, err := ac.Users.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or inactive"})
		return
	}

	ac.tokenPairResponse(c, user)
}

// Me returns the authenticated account.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authentication.ErrInvalidToken.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword re-verifies the current password before accepting the new
// one.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req passwordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NewPassword != req.ConfirmNewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new passwords do not match"})
		return
	}

	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authentication.ErrInvalidToken.Error()})
		return
	}

	if err := ac.Users.UpdatePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if authentication.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// RequestPasswordReset issues a reset token. The response is uniform
// whether or not the email exists.
func (ac *AuthController) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ac.Users.CreateResetToken(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if token != "" && ac.Mailer != nil {
		if err := ac.Mailer.SendPasswordResetEmail(req.Email, token); err != nil {
			log.Println("Error sending reset email:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset token has been sent"})
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (ac *AuthController) ConfirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NewPassword != req.ConfirmNewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new passwords do not match"})
		return
	}

	if err := ac.Users.ResetPasswordWithToken(req.Token, req.NewPassword); err != nil {
		if authentication.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Status reports the authentication state of the caller.
func (ac *AuthController) Status(c *gin.Context) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"is_authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"is_authenticated": true,
		"user":             user,
		"permissions":      authentication.PermissionsForRole(user.Role),
	})
}

func pagination(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}

// ListUsers returns all accounts, paginated.
func (ac *AuthController) ListUsers(c *gin.Context) {
	skip, limit := pagination(c)
	users, err := ac.Users.ListAll(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListUsersByRole returns accounts filtered by role, paginated.
func (ac *AuthController) ListUsersByRole(c *gin.Context) {
	skip, limit := pagination(c)
	users, err := ac.Users.ListByRole(c.Param("role"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ac *AuthController) setUserActive(c *gin.Context, active bool, message string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var opErr error
	if active {
		opErr = ac.Users.Activate(uint(id))
	} else {
		opErr = ac.Users.Deactivate(uint(id))
	}
	if opErr != nil {
		if errors.Is(opErr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ActivateUser re-enables an account.
func (ac *AuthController) ActivateUser(c *gin.Context) {
	ac.setUserActive(c, true, "User activated successfully")
}

// DeactivateUser soft-disables an account.
func (ac *AuthController) DeactivateUser(c *gin.Context) {
	ac.setUserActive(c, false, "User deactivated successfully")
}
