package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification
type NotificationType string

const (
	NotificationAccount       NotificationType = "account"
	NotificationUrgent        NotificationType = "urgent"
	NotificationAppointment   NotificationType = "appointment"
	NotificationLabResult     NotificationType = "lab_result"
	NotificationSystem        NotificationType = "system"
	NotificationPasswordReset NotificationType = "password_reset"
)

// NotificationPriority orders notifications by urgency
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

func (p NotificationPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Notification is a one-way message delivered to a single recipient
type Notification struct {
	ID               uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string               `gorm:"type:varchar(200);not null" json:"title"`
	Message          string               `gorm:"type:text;not null" json:"message"`
	NotificationType NotificationType     `gorm:"type:varchar(50);not null;index" json:"notification_type"`
	IsRead           bool                 `gorm:"not null;default:false;index" json:"is_read"`
	Priority         NotificationPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	RelatedID        *string              `gorm:"type:varchar(64)" json:"related_id,omitempty"`
	File             *string              `gorm:"type:text" json:"file,omitempty"`
	CreatedAt        time.Time            `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
