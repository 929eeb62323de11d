package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type LiveAppointmentRepository struct {
	mock.Mock
}

func (m *LiveAppointmentRepository) Create(ctx context.Context, db *gorm.DB, session *entity.LiveAppointment) error {
	args := m.Called(ctx, db, session)
	return args.Error(0)
}

func (m *LiveAppointmentRepository) Update(ctx context.Context, db *gorm.DB, session *entity.LiveAppointment) error {
	args := m.Called(ctx, db, session)
	return args.Error(0)
}

func (m *LiveAppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LiveAppointment, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.LiveAppointment)
	return r0, args.Error(1)
}

func (m *LiveAppointmentRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.LiveAppointment, error) {
	args := m.Called(ctx, db, appointmentID)
	r0, _ := args.Get(0).(*entity.LiveAppointment)
	return r0, args.Error(1)
}

func (m *LiveAppointmentRepository) FindWithoutNumber(ctx context.Context, db *gorm.DB) ([]entity.LiveAppointment, error) {
	args := m.Called(ctx, db)
	r0, _ := args.Get(0).([]entity.LiveAppointment)
	return r0, args.Error(1)
}
