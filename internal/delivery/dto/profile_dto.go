package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpdateProfileRequest is a partial update of the caller's own profile
type UpdateProfileRequest struct {
	FirstName             *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	MiddleName            *string `json:"middle_name" validate:"omitempty,max=50"`
	LastName              *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	Birthday              *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Email                 *string `json:"email" validate:"omitempty,email"`
	Sex                   *string `json:"sex" validate:"omitempty,oneof=male female other"`
	CivilStatus           *string `json:"civil_status" validate:"omitempty,max=20"`
	Address               *string `json:"address"`
	ContactPerson         *string `json:"contact_person" validate:"omitempty,max=100"`
	RelationshipToPatient *string `json:"relationship_to_patient" validate:"omitempty,max=50"`
	ContactNumber         *string `json:"contact_number" validate:"omitempty,max=20"`
	PhoneNumber           *string `json:"phone_number" validate:"omitempty,max=20"`
	PhoneType             *string `json:"phone_type" validate:"omitempty,max=10"`
	DataPrivacyConsent    *bool   `json:"data_privacy_consent"`
}

// Response DTOs

type ProfileResponse struct {
	UserID                uuid.UUID  `json:"user_id"`
	FirstName             string     `json:"first_name"`
	MiddleName            *string    `json:"middle_name,omitempty"`
	LastName              string     `json:"last_name"`
	Birthday              *string    `json:"birthday,omitempty"`
	Email                 *string    `json:"email,omitempty"`
	Sex                   *string    `json:"sex,omitempty"`
	CivilStatus           *string    `json:"civil_status,omitempty"`
	Address               *string    `json:"address,omitempty"`
	ContactPerson         *string    `json:"contact_person,omitempty"`
	RelationshipToPatient *string    `json:"relationship_to_patient,omitempty"`
	ContactNumber         *string    `json:"contact_number,omitempty"`
	PhoneNumber           *string    `json:"phone_number,omitempty"`
	PhoneType             *string    `json:"phone_type,omitempty"`
	HasPhoto              bool       `json:"has_photo"`
	DataPrivacyConsent    bool       `json:"data_privacy_consent"`
	ConsentDate           *time.Time `json:"consent_date,omitempty"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
