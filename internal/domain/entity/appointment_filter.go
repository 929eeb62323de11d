package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	ApprovalStatus ApprovalStatus
	Status         AppointmentStatus
	DoctorID       *uuid.UUID
	PatientID      *uuid.UUID
	StartAt        string // Format: YYYY-MM-DD
	EndAt          string // Format: YYYY-MM-DD
}
