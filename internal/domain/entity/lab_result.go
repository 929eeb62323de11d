package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabResult is an uploaded laboratory document for a patient
type LabResult struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	LabType      string     `gorm:"type:varchar(100);not null" json:"lab_type"`
	ResultFile   string     `gorm:"type:text;not null" json:"result_file"`
	FileType     string     `gorm:"type:varchar(100);not null" json:"file_type"`
	FileName     string     `gorm:"type:varchar(255);not null" json:"file_name"`
	UploadedByID *uuid.UUID `gorm:"type:uuid;index" json:"uploaded_by_id,omitempty"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`
	UploadDate   time.Time  `gorm:"autoCreateTime;index" json:"upload_date"`

	// Relationships
	User       *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UploadedBy *User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

func (LabResult) TableName() string {
	return "lab_results"
}
