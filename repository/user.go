package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-connect/authentication"
	"hospital-connect/models"
)

// Reset tokens are single-use and time-boxed.
const resetTokenTTL = 24 * time.Hour

// UserRepository handles account lookups and mutations. Lookups coalesce
// the unified users table with the legacy doctors table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) findDoctorByEmail(email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.DB.Where("email = ?", email).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// EmailInUse checks both the users table and the legacy doctors table.
func (r *UserRepository) EmailInUse(email string) (bool, error) {
	if _, err := r.FindByEmail(email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := r.findDoctorByEmail(email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return false, nil
}

// Authenticate resolves the identity behind the credentials, trying the
// users table first and falling back to the legacy doctors table. A legacy
// doctor comes back as a synthesized account view with role "doctor".
func (r *UserRepository) Authenticate(email, password string) (*models.User, error) {
	user, err := r.FindByEmail(email)
	if err == nil {
		if authentication.CheckPassword(user.Password, password) {
			return user, nil
		}
		return nil, authentication.ErrInvalidCredentials
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	doctor, err := r.findDoctorByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authentication.ErrInvalidCredentials
		}
		return nil, err
	}
	if !authentication.CheckPassword(doctor.Password, password) {
		return nil, authentication.ErrInvalidCredentials
	}
	return doctor.AsUser(), nil
}

// Create hashes the password and persists a new account. The email must be
// unused in both tables.
func (r *UserRepository) Create(user *models.User, password string) error {
	taken, err := r.EmailInUse(user.Email)
	if err != nil {
		return err
	}
	if taken {
		return authentication.NewValidationError("email already registered")
	}

	hashed, err := authentication.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.IsActive = true
	return r.DB.Create(user).Error
}

// UpdatePassword re-verifies the current password before storing the new
// hash. The stored hash is untouched on any failure.
func (r *UserRepository) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	user, err := r.FindByID(userID)
	if err != nil {
		return err
	}
	if !authentication.CheckPassword(user.Password, currentPassword) {
		return authentication.NewValidationError("current password is incorrect")
	}

	hashed, err := authentication.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return r.DB.Model(user).Update("password", hashed).Error
}

func (r *UserRepository) setActive(userID uint, active bool) error {
	result := r.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Activate re-enables an account.
func (r *UserRepository) Activate(userID uint) error {
	return r.setActive(userID, true)
}

// Deactivate soft-disables an account; auth flows never hard-delete.
func (r *UserRepository) Deactivate(userID uint) error {
	return r.setActive(userID, false)
}

func (r *UserRepository) ListAll(offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.DB.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListByRole(role string, offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.DB.Where("role = ?", role).Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateResetToken stores a fresh single-use reset token with a 24h expiry
// and returns it. An unknown email yields an empty token and no error so
// the caller can keep its response uniform.
func (r *UserRepository) CreateResetToken(email string) (string, error) {
	user, err := r.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	expires := time.Now().Add(resetTokenTTL)
	err = r.DB.Model(user).Updates(map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expires,
	}).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResetPasswordWithToken consumes an unexpired reset token: stores the new
// hash and clears the token so it can never be reused.
func (r *UserRepository) ResetPasswordWithToken(token, newPassword string) error {
	var user models.User
	err := r.DB.Where("reset_token = ? AND reset_token_expires_at > ?", token, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authentication.NewValidationError("invalid or expired reset token")
		}
		return err
	}

	hashed, err := authentication.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return r.DB.Model(&user).Updates(map[string]interface{}{
		"password":               hashed,
		"reset_token":            "",
		"reset_token_expires_at": nil,
	}).Error
}

// ClearExpiredResetTokens sweeps tokens past their expiry.
func (r *UserRepository) ClearExpiredResetTokens() error {
	return r.DB.Model(&models.User{}).
		Where("reset_token_expires_at < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_token":            "",
			"reset_token_expires_at": nil,
		}).Error
}
