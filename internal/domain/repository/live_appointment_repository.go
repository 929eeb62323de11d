package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LiveAppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, session *entity.LiveAppointment) error
	Update(ctx context.Context, db *gorm.DB, session *entity.LiveAppointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LiveAppointment, error)
	FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.LiveAppointment, error)
	FindWithoutNumber(ctx context.Context, db *gorm.DB) ([]entity.LiveAppointment, error)
}
