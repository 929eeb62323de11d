package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username    string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text;not null" json:"-"`
	Role        Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Status      bool       `gorm:"not null;default:true" json:"status"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	DateJoined  time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Doctor  *Doctor      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
	Patient *Patient     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// CanLogin reports whether the account is allowed to authenticate at all
func (u *User) CanLogin() bool {
	return u.Status && u.IsActive
}

// FullName returns "First Last" from the profile, falling back to the username
func (u *User) FullName() string {
	if u.Profile != nil {
		name := strings.TrimSpace(u.Profile.FirstName + " " + u.Profile.LastName)
		if name != "" {
			return name
		}
	}
	return u.Username
}
