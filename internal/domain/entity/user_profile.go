package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds demographic and contact data, one per user, created on first write
type UserProfile struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName             string     `gorm:"type:varchar(50);not null" json:"first_name"`
	MiddleName            *string    `gorm:"type:varchar(50)" json:"middle_name,omitempty"`
	LastName              string     `gorm:"type:varchar(50);not null" json:"last_name"`
	Birthday              *time.Time `gorm:"type:date" json:"birthday,omitempty"`
	Email                 *string    `gorm:"type:varchar(100)" json:"email,omitempty"`
	Sex                   *string    `gorm:"type:varchar(10)" json:"sex,omitempty"`
	CivilStatus           *string    `gorm:"type:varchar(20)" json:"civil_status,omitempty"`
	Address               *string    `gorm:"type:text" json:"address,omitempty"`
	ContactPerson         *string    `gorm:"type:varchar(100)" json:"contact_person,omitempty"`
	RelationshipToPatient *string    `gorm:"type:varchar(50)" json:"relationship_to_patient,omitempty"`
	ContactNumber         *string    `gorm:"type:varchar(20)" json:"contact_number,omitempty"`
	PhoneNumber           *string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	PhoneType             *string    `gorm:"type:varchar(10)" json:"phone_type,omitempty"`
	PhotoPath             *string    `gorm:"type:text" json:"photo_path,omitempty"`
	DataPrivacyConsent    bool       `gorm:"not null;default:false" json:"data_privacy_consent"`
	ConsentDate           *time.Time `json:"consent_date,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// Sex values
const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)
