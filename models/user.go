package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role tiers, most restrictive first
const (
	RoleUser   = "user"
	RoleDoctor = "doctor"
	RoleNurse  = "nurse"
	RoleAdmin  = "admin"
)

type User struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	Name                string     `json:"name" gorm:"size:100;not null" validate:"required,min=2,max=100"`
	Email               string     `json:"email" gorm:"size:255;not null;unique" validate:"required,email"`
	Password            string     `json:"-" gorm:"size:255;not null"`
	Role                string     `json:"role" gorm:"size:50;not null;default:user"`
	LicenseNumber       string     `json:"license_number,omitempty" gorm:"size:20"`
	Specialty           string     `json:"specialty,omitempty" gorm:"size:100"`
	IsActive            bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ResetToken          string     `json:"-" gorm:"size:100"`
	ResetTokenExpiresAt *time.Time `json:"-"`
}

type UserClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}
