package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UploadLabResultRequest carries the form fields of a multipart lab result upload
type UploadLabResultRequest struct {
	PatientID string  `json:"patient_id" validate:"required,uuid"`
	LabType   string  `json:"lab_type" validate:"required,max=100"`
	Notes     *string `json:"notes"`
}

type UpdateLabResultRequest struct {
	LabType *string `json:"lab_type" validate:"omitempty,min=1,max=100"`
	Notes   *string `json:"notes"`
}

// Response DTOs

type LabResultResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	LabType        string     `json:"lab_type"`
	FileName       string     `json:"file_name"`
	FileType       string     `json:"file_type"`
	UploadedByID   *uuid.UUID `json:"uploaded_by_id,omitempty"`
	UploadedByName string     `json:"uploaded_by_name,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	UploadDate     time.Time  `json:"upload_date"`
}
