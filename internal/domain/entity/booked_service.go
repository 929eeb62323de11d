package entity

import (
	"time"

	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookedServiceStatus is the lifecycle of an ad-hoc service booking
type BookedServiceStatus string

const (
	BookedServicePending   BookedServiceStatus = "Pending"
	BookedServiceConfirmed BookedServiceStatus = "Confirmed"
	BookedServiceCompleted BookedServiceStatus = "Completed"
	BookedServiceCancelled BookedServiceStatus = "Cancelled"
)

func (s BookedServiceStatus) IsValid() bool {
	switch s {
	case BookedServicePending, BookedServiceConfirmed, BookedServiceCompleted, BookedServiceCancelled:
		return true
	}
	return false
}

// bookedServiceTransitions lists the allowed next states per state
var bookedServiceTransitions = map[BookedServiceStatus][]BookedServiceStatus{
	BookedServicePending:   {BookedServiceConfirmed, BookedServiceCancelled},
	BookedServiceConfirmed: {BookedServiceCompleted, BookedServiceCancelled},
}

// BookedService is a booking of a named service, not linked to a doctor
type BookedService struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID   *uuid.UUID          `gorm:"type:uuid;index" json:"service_id,omitempty"`
	ServiceName string              `gorm:"type:varchar(150);not null" json:"service_name"`
	Price       decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	BookingDate time.Time           `gorm:"type:date;not null" json:"booking_date"`
	BookingTime string              `gorm:"type:time;not null" json:"booking_time"`
	Status      BookedServiceStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Notes       *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User    *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service *MedicalService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (BookedService) TableName() string {
	return "booked_services"
}

// TransitionTo moves the booking along Pending→Confirmed→Completed or to Cancelled
func (b *BookedService) TransitionTo(next BookedServiceStatus) error {
	if !next.IsValid() {
		return apperror.Validationf("Invalid status %q", next)
	}
	if next == b.Status {
		return nil
	}
	for _, allowed := range bookedServiceTransitions[b.Status] {
		if allowed == next {
			b.Status = next
			return nil
		}
	}
	return apperror.Conflictf("Cannot change booking from %s to %s", b.Status, next)
}
