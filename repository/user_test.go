package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-connect/authentication"
	"hospital-connect/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Doctor{}))
	return db
}

func seedUser(t *testing.T, repo *UserRepository, email, password, role string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, Role: role}
	require.NoError(t, repo.Create(user, password))
	return user
}

func seedLegacyDoctor(t *testing.T, db *gorm.DB, email, password string) *models.Doctor {
	t.Helper()
	hashed, err := authentication.HashPassword(password)
	require.NoError(t, err)
	doctor := &models.Doctor{
		Name:          "Dr. Legacy",
		LicenseNumber: "CRM-1234",
		Specialty:     "Cardiology",
		Email:         email,
		Password:      hashed,
		HospitalID:    1,
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	seedUser(t, repo, "a@h.com", "secret1", "")

	user, err := repo.Authenticate("a@h.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	_, err = repo.Authenticate("a@h.com", "wrong")
	assert.ErrorIs(t, err, authentication.ErrInvalidCredentials)

	_, err = repo.Authenticate("nobody@h.com", "secret1")
	assert.ErrorIs(t, err, authentication.ErrInvalidCredentials)
}

func TestAuthenticateLegacyDoctorFallback(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	doctor := seedLegacyDoctor(t, db, "dr@h.com", "secret1")

	user, err := repo.Authenticate("dr@h.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, user.ID)
	assert.Equal(t, models.RoleDoctor, user.Role)
	assert.Equal(t, "CRM-1234", user.LicenseNumber)
	assert.True(t, user.IsActive)

	_, err = repo.Authenticate("dr@h.com", "wrong")
	assert.ErrorIs(t, err, authentication.ErrInvalidCredentials)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	seedUser(t, repo, "a@h.com", "secret1", "")

	err := repo.Create(&models.User{Name: "Other", Email: "a@h.com"}, "secret2")
	require.Error(t, err)
	assert.True(t, authentication.IsValidationError(err))
}

func TestCreateRejectsEmailFromLegacyTable(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	seedLegacyDoctor(t, db, "dr@h.com", "secret1")

	err := repo.Create(&models.User{Name: "Other", Email: "dr@h.com"}, "secret2")
	require.Error(t, err)
	assert.True(t, authentication.IsValidationError(err))
}

func TestUpdatePassword(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, repo, "a@h.com", "secret1", "")

	require.NoError(t, repo.UpdatePassword(user.ID, "secret1", "secret2"))

	_, err := repo.Authenticate("a@h.com", "secret2")
	require.NoError(t, err)
	_, err = repo.Authenticate("a@h.com", "secret1")
	assert.ErrorIs(t, err, authentication.ErrInvalidCredentials)
}

func TestUpdatePasswordWrongCurrentLeavesHashUnchanged(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, repo, "a@h.com", "secret1", "")

	err := repo.UpdatePassword(user.ID, "wrong", "secret2")
	require.Error(t, err)
	assert.True(t, authentication.IsValidationError(err))

	_, err = repo.Authenticate("a@h.com", "secret1")
	assert.NoError(t, err)
	_, err = repo.Authenticate("a@h.com", "secret2")
	assert.ErrorIs(t, err, authentication.ErrInvalidCredentials)
}

func TestActivateDeactivate(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, repo, "a@h.com", "secret1", "")

	require.NoError(t, repo.Deactivate(user.ID))
	got, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.Activate(user.ID))
	got, err = repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	assert.ErrorIs(t, repo.Deactivate(9999), gorm.ErrRecordNotFound)
}

func TestListByRole(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	seedUser(t, repo, "a@h.com", "secret1", models.RoleAdmin)
	seedUser(t, repo, "b@h.com", "secret1", models.RoleNurse)
	seedUser(t, repo, "c@h.com", "secret1", models.RoleNurse)

	nurses, err := repo.ListByRole(models.RoleNurse, 0, 100)
	require.NoError(t, err)
	assert.Len(t, nurses, 2)

	all, err := repo.ListAll(0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	paged, err := repo.ListAll(1, 1)
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestResetTokenLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	seedUser(t, repo, "a@h.com", "secret1", "")

	token, err := repo.CreateResetToken("a@h.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, repo.ResetPasswordWithToken(token, "secret2"))

	_, err = repo.Authenticate("a@h.com", "secret2")
	require.NoError(t, err)

	// consumed tokens can never be reused
	err = repo.ResetPasswordWithToken(token, "secret3")
	require.Error(t, err)
	assert.True(t, authentication.IsValidationError(err))
}

func TestResetTokenUnknownEmailIsSilent(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	token, err := repo.CreateResetToken("nobody@h.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestResetTokenExpiry(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, repo, "a@h.com", "secret1", "")

	token, err := repo.CreateResetToken("a@h.com")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("reset_token_expires_at", expired).Error)

	err = repo.ResetPasswordWithToken(token, "secret2")
	require.Error(t, err)
	assert.True(t, authentication.IsValidationError(err))
}

func TestClearExpiredResetTokens(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, repo, "a@h.com", "secret1", "")

	_, err := repo.CreateResetToken("a@h.com")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("reset_token_expires_at", expired).Error)

	require.NoError(t, repo.ClearExpiredResetTokens())

	got, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiresAt)
}
