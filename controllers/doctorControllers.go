package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hospital-connect/authentication"
	"hospital-connect/models"
	"hospital-connect/repository"
)

// DoctorController exposes CRUD over the doctor registry.
type DoctorController struct {
	Doctors *repository.DoctorRepository
}

func NewDoctorController(doctors *repository.DoctorRepository) *DoctorController {
	return &DoctorController{Doctors: doctors}
}

type doctorRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Specialty     string `json:"specialty" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	HospitalID    uint   `json:"hospital_id"`
}

func doctorID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return 0, false
	}
	return uint(id), true
}

// Create registers a new doctor in the legacy registry.
func (dc *DoctorController) Create(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := &models.Doctor{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		Specialty:     req.Specialty,
		Email:         req.Email,
		HospitalID:    req.HospitalID,
	}
	if err := dc.Doctors.Create(doctor, req.Password); err != nil {
		if authentication.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// List returns all doctors.
func (dc *DoctorController) List(c *gin.Context) {
	doctors, err := dc.Doctors.FindAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetByID returns a single doctor.
func (dc *DoctorController) GetByID(c *gin.Context) {
	id, ok := doctorID(c)
	if !ok {
		return
	}

	doctor, err := dc.Doctors.FindByID(id)
	if err != nil {
		if repository.ErrNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetByLicense returns the doctor holding a license number.
func (dc *DoctorController) GetByLicense(c *gin.Context) {
	doctor, err := dc.Doctors.FindByLicense(c.Param("license"))
	if err != nil {
		if repository.ErrNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetBySpecialty returns doctors matching a specialty substring.
func (dc *DoctorController) GetBySpecialty(c *gin.Context) {
	doctors, err := dc.Doctors.FindBySpecialty(c.Param("specialty"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// Update applies a partial update to a doctor.
func (dc *DoctorController) Update(c *gin.Context) {
	id, ok := doctorID(c)
	if !ok {
		return
	}

	var req repository.DoctorUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor, err := dc.Doctors.Update(id, &req)
	if err != nil {
		if repository.ErrNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
			return
		}
		if authentication.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// Delete removes a doctor from the registry.
func (dc *DoctorController) Delete(c *gin.Context) {
	id, ok := doctorID(c)
	if !ok {
		return
	}

	if err := dc.Doctors.Delete(id); err != nil {
		if repository.ErrNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CountTotal returns the registry size.
func (dc *DoctorController) CountTotal(c *gin.Context) {
	count, err := dc.Doctors.CountAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// CountBySpecialty counts doctors matching a specialty substring.
func (dc *DoctorController) CountBySpecialty(c *gin.Context) {
	specialty := c.Param("specialty")
	count, err := dc.Doctors.CountBySpecialty(specialty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "specialty": specialty})
}
