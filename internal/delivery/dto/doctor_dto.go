package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Username          string            `json:"username" validate:"required,min=3,max=50"`
	Email             string            `json:"email" validate:"required,email,max=100"`
	Password          string            `json:"password" validate:"required,min=8"`
	FirstName         string            `json:"first_name" validate:"required,max=50"`
	LastName          string            `json:"last_name" validate:"required,max=50"`
	Specialization    string            `json:"specialization" validate:"required,max=100"`
	LicenseNumber     string            `json:"license_number" validate:"required,max=50"`
	YearsOfExperience int               `json:"years_of_experience" validate:"gte=0,lte=80"`
	Availability      map[string]string `json:"availability"`
	ContactInfo       string            `json:"contact_info"`
}

type UpdateDoctorRequest struct {
	Specialization    *string           `json:"specialization" validate:"omitempty,min=1,max=100"`
	LicenseNumber     *string           `json:"license_number" validate:"omitempty,min=1,max=50"`
	YearsOfExperience *int              `json:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
	Availability      map[string]string `json:"availability"`
	ContactInfo       *string           `json:"contact_info"`
	IsActive          *bool             `json:"is_active"`
}

// Response DTOs

type DoctorResponse struct {
	ID                uuid.UUID              `json:"id"`
	UserID            uuid.UUID              `json:"user_id"`
	Name              string                 `json:"name"`
	Username          string                 `json:"username,omitempty"`
	Email             string                 `json:"email,omitempty"`
	Specialization    string                 `json:"specialization"`
	LicenseNumber     string                 `json:"license_number"`
	YearsOfExperience int                    `json:"years_of_experience"`
	Availability      map[string]interface{} `json:"availability,omitempty"`
	ContactInfo       string                 `json:"contact_info,omitempty"`
	IsActive          bool                   `json:"is_active"`
}

type DeleteDoctorResponse struct {
	AppointmentsDeleted int64 `json:"appointments_deleted"`
}
