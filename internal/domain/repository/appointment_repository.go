package repository

import (
	"context"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindSlotConflict returns a Scheduled appointment holding the doctor's exact date and time.
	// excludeID skips the appointment being edited; uuid.Nil skips nothing.
	FindSlotConflict(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	DeleteByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
