package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID         string  `json:"doctor_id" validate:"required,uuid"`
	ConsultationType string  `json:"consultation_type" validate:"required"`
	ConsultationDate string  `json:"consultation_date" validate:"required,datetime=2006-01-02"`
	ConsultationTime string  `json:"consultation_time" validate:"required,datetime=15:04"`
	Notes            *string `json:"notes"`
	ReasonForVisit   *string `json:"reason_for_visit"`
}

// SaveAppointmentRequest is the single admin form that edits, approves or rejects
type SaveAppointmentRequest struct {
	ConsultationID    string  `json:"consultation_id" validate:"required,uuid"`
	ConsultationType  *string `json:"consultation_type"`
	ConsultationDate  *string `json:"consultation_date" validate:"omitempty,datetime=2006-01-02"`
	ConsultationTime  *string `json:"consultation_time" validate:"omitempty,datetime=15:04"`
	Notes             *string `json:"notes"`
	AppointmentNumber *string `json:"appointment_number" validate:"omitempty,max=50"`
	MeetingLink       *string `json:"meeting_link"`
	Approve           bool    `json:"approve"`
	Reject            bool    `json:"reject"`
}

type ApproveAppointmentRequest struct {
	AppointmentNumber *string `json:"appointment_number" validate:"omitempty,max=50"`
}

type AppointmentFilterRequest struct {
	ApprovalStatus string `json:"approval_status" validate:"omitempty,oneof=Pending Approved Rejected"`
	Status         string `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
	DoctorID       string `json:"doctor_id" validate:"omitempty,uuid"`
	StartDate      string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type BookAppointmentResponse struct {
	Status            string    `json:"status"`
	ConsultationID    uuid.UUID `json:"consultation_id"`
	AppointmentNumber *string   `json:"appointment_number"`
}

type AppointmentResponse struct {
	ID                uuid.UUID  `json:"id"`
	AppointmentNumber *string    `json:"appointment_number"`
	PatientID         uuid.UUID  `json:"patient_id"`
	PatientName       string     `json:"patient_name,omitempty"`
	DoctorID          uuid.UUID  `json:"doctor_id"`
	DoctorName        string     `json:"doctor_name,omitempty"`
	Specialization    string     `json:"specialization,omitempty"`
	ConsultationType  string     `json:"consultation_type"`
	ConsultationDate  string     `json:"consultation_date"`
	ConsultationTime  string     `json:"consultation_time"`
	ApprovalStatus    string     `json:"approval_status"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	Status            string     `json:"status"`
	Notes             *string    `json:"notes,omitempty"`
	MeetingLink       *string    `json:"meeting_link,omitempty"`
	ReasonForVisit    *string    `json:"reason_for_visit,omitempty"`
	DurationMinutes   int        `json:"duration_minutes"`
	LiveSessionID     *uuid.UUID `json:"live_session_id,omitempty"`
	LiveSessionStatus string     `json:"live_session_status,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type SaveAppointmentResponse struct {
	Message     string               `json:"message"`
	Appointment *AppointmentResponse `json:"appointment"`
}
