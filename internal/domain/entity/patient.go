package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents the clinical record of a patient user
type Patient struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	ClientID              *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	MedicalRecordNumber   *string    `gorm:"type:varchar(50);uniqueIndex" json:"medical_record_number,omitempty"`
	DateOfBirth           *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender                *string    `gorm:"type:char(1)" json:"gender,omitempty"`
	BloodType             *string    `gorm:"type:varchar(3)" json:"blood_type,omitempty"`
	Allergies             *string    `gorm:"type:text" json:"allergies,omitempty"`
	Conditions            *string    `gorm:"type:text" json:"conditions,omitempty"`
	EmergencyContactName  *string    `gorm:"type:varchar(100)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// BloodTypes lists the accepted blood type values
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
