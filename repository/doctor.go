package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"hospital-connect/authentication"
	"hospital-connect/models"
)

// DoctorRepository handles the legacy doctor registry.
type DoctorRepository struct {
	DB *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{DB: db}
}

func (r *DoctorRepository) FindAll() ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := r.DB.Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorRepository) FindByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.DB.First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepository) FindByLicense(license string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.DB.Where("license_number = ?", license).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// FindBySpecialty matches the specialty as a case-insensitive substring.
func (r *DoctorRepository) FindBySpecialty(specialty string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	pattern := "%" + strings.ToLower(specialty) + "%"
	if err := r.DB.Where("LOWER(specialty) LIKE ?", pattern).Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorRepository) existsByLicense(license string, excludeID uint) (bool, error) {
	query := r.DB.Model(&models.Doctor{}).Where("license_number = ?", license)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DoctorRepository) existsByEmail(email string, excludeID uint) (bool, error) {
	query := r.DB.Model(&models.Doctor{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create hashes the password and persists a new doctor. License number and
// email must be unused; the email check spans the users table too.
func (r *DoctorRepository) Create(doctor *models.Doctor, password string) error {
	taken, err := r.existsByLicense(doctor.LicenseNumber, 0)
	if err != nil {
		return err
	}
	if taken {
		return authentication.NewValidationError("license number already registered")
	}

	taken, err = r.existsByEmail(doctor.Email, 0)
	if err != nil {
		return err
	}
	if !taken {
		var count int64
		if err := r.DB.Model(&models.User{}).Where("email = ?", doctor.Email).Count(&count).Error; err != nil {
			return err
		}
		taken = count > 0
	}
	if taken {
		return authentication.NewValidationError("email already registered")
	}

	hashed, err := authentication.HashPassword(password)
	if err != nil {
		return err
	}
	doctor.Password = hashed
	return r.DB.Create(doctor).Error
}

// DoctorUpdate carries the mutable fields; nil pointers are left untouched.
type DoctorUpdate struct {
	Name          *string `json:"name,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	Specialty     *string `json:"specialty,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=6"`
	HospitalID    *uint   `json:"hospital_id,omitempty"`
}

// Update applies the provided fields, enforcing uniqueness against other
// records and re-hashing the password when supplied.
func (r *DoctorRepository) Update(id uint, update *DoctorUpdate) (*models.Doctor, error) {
	doctor, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.LicenseNumber != nil {
		taken, err := r.existsByLicense(*update.LicenseNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, authentication.NewValidationError("license number already registered to another doctor")
		}
		doctor.LicenseNumber = *update.LicenseNumber
	}
	if update.Email != nil {
		taken, err := r.existsByEmail(*update.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, authentication.NewValidationError("email already registered to another doctor")
		}
		doctor.Email = *update.Email
	}
	if update.Name != nil {
		doctor.Name = *update.Name
	}
	if update.Specialty != nil {
		doctor.Specialty = *update.Specialty
	}
	if update.HospitalID != nil {
		doctor.HospitalID = *update.HospitalID
	}
	if update.Password != nil {
		hashed, err := authentication.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		doctor.Password = hashed
	}

	if err := r.DB.Save(doctor).Error; err != nil {
		return nil, err
	}
	return doctor, nil
}

func (r *DoctorRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.Doctor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DoctorRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Doctor{}).Count(&count).Error
	return count, err
}

func (r *DoctorRepository) CountBySpecialty(specialty string) (int64, error) {
	var count int64
	pattern := "%" + strings.ToLower(specialty) + "%"
	err := r.DB.Model(&models.Doctor{}).Where("LOWER(specialty) LIKE ?", pattern).Count(&count).Error
	return count, err
}

// ErrNotFound reports whether err is the store's missing-record error.
func ErrNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
