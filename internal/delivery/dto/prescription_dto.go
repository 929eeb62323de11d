package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MedicineRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type CreatePrescriptionRequest struct {
	Medicines            []MedicineRequest `json:"medicines" validate:"required,min=1,dive"`
	Instructions         *string           `json:"instructions"`
	FollowUpDate         *string           `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
	FollowUpInstructions *string           `json:"follow_up_instructions"`
}

type UpdatePrescriptionRequest struct {
	Medicines            []MedicineRequest `json:"medicines" validate:"omitempty,min=1,dive"`
	Instructions         *string           `json:"instructions"`
	FollowUpDate         *string           `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
	FollowUpInstructions *string           `json:"follow_up_instructions"`
}

type SignPrescriptionRequest struct {
	Signature string `json:"signature" validate:"required"`
}

// Response DTOs

type CreatePrescriptionResponse struct {
	PrescriptionID     uuid.UUID `json:"prescription_id"`
	PrescriptionNumber string    `json:"prescription_number"`
}

type MedicineResponse struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type PrescriptionResponse struct {
	ID                   uuid.UUID          `json:"id"`
	LiveAppointmentID    uuid.UUID          `json:"live_appointment_id"`
	DoctorID             *uuid.UUID         `json:"doctor_id,omitempty"`
	DoctorName           string             `json:"doctor_name,omitempty"`
	PrescriptionNumber   string             `json:"prescription_number"`
	Medicines            []MedicineResponse `json:"medicines"`
	Instructions         *string            `json:"instructions,omitempty"`
	FollowUpDate         *string            `json:"follow_up_date,omitempty"`
	FollowUpInstructions *string            `json:"follow_up_instructions,omitempty"`
	Signed               bool               `json:"signed"`
	SignatureDate        *time.Time         `json:"signature_date,omitempty"`
	HasFile              bool               `json:"has_file"`
	Status               string             `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
