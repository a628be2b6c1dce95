package models

// Doctor is the legacy doctors table. Accounts created before the unified
// users table live here; login and uniqueness checks coalesce both tables.
type Doctor struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"size:100;not null" validate:"required,min=2,max=100"`
	LicenseNumber string `json:"license_number" gorm:"size:20;not null;unique" validate:"required"`
	Specialty     string `json:"specialty" gorm:"size:100;not null" validate:"required"`
	Email         string `json:"email" gorm:"size:255;not null;unique" validate:"required,email"`
	Password      string `json:"-" gorm:"size:255;not null"`
	HospitalID    uint   `json:"hospital_id"`
}

// AsUser synthesizes a unified account view for a legacy doctor record.
func (d *Doctor) AsUser() *User {
	return &User{
		ID:            d.ID,
		Name:          d.Name,
		Email:         d.Email,
		Password:      d.Password,
		Role:          RoleDoctor,
		LicenseNumber: d.LicenseNumber,
		Specialty:     d.Specialty,
		IsActive:      true,
	}
}
