package mocks

import (
	"context"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(ctx, db, appointment)
	return args.Error(0)
}

func (m *AppointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(ctx, db, appointment)
	return args.Error(0)
}

func (m *AppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.Appointment)
	return r0, args.Error(1)
}

func (m *AppointmentRepository) FindSlotConflict(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, db, doctorID, date, clock, excludeID)
	r0, _ := args.Get(0).(*entity.Appointment)
	return r0, args.Error(1)
}

func (m *AppointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, patientID)
	r0, _ := args.Get(0).([]entity.Appointment)
	return r0, args.Error(1)
}

func (m *AppointmentRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, doctorID)
	r0, _ := args.Get(0).([]entity.Appointment)
	return r0, args.Error(1)
}

func (m *AppointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, filter)
	r0, _ := args.Get(0).([]entity.Appointment)
	return r0, args.Error(1)
}

func (m *AppointmentRepository) DeleteByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, doctorID)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}
