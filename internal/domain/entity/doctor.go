package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents doctor-specific data for a user with role doctor
type Doctor struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Specialization    string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	YearsOfExperience int       `gorm:"not null;default:0" json:"years_of_experience"`
	// Availability maps a weekday set (e.g. "mon-fri") to a time range (e.g. "09:00-17:00")
	Availability JSON      `gorm:"type:jsonb" json:"availability,omitempty"`
	ContactInfo  string    `gorm:"type:text" json:"contact_info"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DisplayName returns "Dr. First Last" when the user is loaded
func (d *Doctor) DisplayName() string {
	if d.User == nil {
		return "Dr."
	}
	return "Dr. " + d.User.FullName()
}
