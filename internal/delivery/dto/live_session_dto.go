package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpdateSessionRequest is a partial update; omitted fields stay untouched
type UpdateSessionRequest struct {
	VitalSigns      map[string]interface{} `json:"vital_signs"`
	Symptoms        *string                `json:"symptoms"`
	Diagnosis       *string                `json:"diagnosis"`
	ClinicalNotes   *string                `json:"clinical_notes"`
	TreatmentPlan   *string                `json:"treatment_plan"`
	FollowUpNotes   *string                `json:"follow_up_notes"`
	DoctorNotes     *string                `json:"doctor_notes"`
	Recommendations *string                `json:"recommendations"`
}

// Response DTOs

type StartSessionResponse struct {
	Action                string    `json:"action"`
	LiveSessionID         uuid.UUID `json:"live_session_id"`
	LiveAppointmentNumber *string   `json:"live_appointment_number,omitempty"`
	Status                string    `json:"status"`
	Message               string    `json:"message"`
}

type UpdateSessionResponse struct {
	UpdatedAt time.Time `json:"updated_at"`
}

type CompleteSessionResponse struct {
	CompletedAt time.Time `json:"completed_at"`
	Duration    int       `json:"duration"`
}

type LiveSessionResponse struct {
	ID                    uuid.UUID              `json:"id"`
	AppointmentID         uuid.UUID              `json:"appointment_id"`
	LiveAppointmentNumber *string                `json:"live_appointment_number,omitempty"`
	Status                string                 `json:"status"`
	StartedAt             *time.Time             `json:"started_at,omitempty"`
	CompletedAt           *time.Time             `json:"completed_at,omitempty"`
	SessionDuration       *int                   `json:"session_duration,omitempty"`
	VitalSigns            map[string]interface{} `json:"vital_signs"`
	Symptoms              *string                `json:"symptoms,omitempty"`
	Diagnosis             *string                `json:"diagnosis,omitempty"`
	ClinicalNotes         *string                `json:"clinical_notes,omitempty"`
	TreatmentPlan         *string                `json:"treatment_plan,omitempty"`
	FollowUpNotes         *string                `json:"follow_up_notes,omitempty"`
	DoctorNotes           *string                `json:"doctor_notes,omitempty"`
	Recommendations       *string                `json:"recommendations,omitempty"`
	UpdatedAt             time.Time              `json:"updated_at"`
}
