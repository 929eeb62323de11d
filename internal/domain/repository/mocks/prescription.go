package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	mock.Mock
}

func (m *PrescriptionRepository) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	args := m.Called(ctx, db, prescription)
	return args.Error(0)
}

func (m *PrescriptionRepository) Update(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	args := m.Called(ctx, db, prescription)
	return args.Error(0)
}

func (m *PrescriptionRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *PrescriptionRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.Prescription)
	return r0, args.Error(1)
}

func (m *PrescriptionRepository) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]entity.Prescription, error) {
	args := m.Called(ctx, db, sessionID)
	r0, _ := args.Get(0).([]entity.Prescription)
	return r0, args.Error(1)
}

func (m *PrescriptionRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	args := m.Called(ctx, db, patientID)
	r0, _ := args.Get(0).([]entity.Prescription)
	return r0, args.Error(1)
}

func (m *PrescriptionRepository) FindFilesByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, db, doctorID)
	r0, _ := args.Get(0).([]string)
	return r0, args.Error(1)
}

func (m *PrescriptionRepository) ExistsByNumber(ctx context.Context, db *gorm.DB, number string) (bool, error) {
	args := m.Called(ctx, db, number)
	r0, _ := args.Get(0).(bool)
	return r0, args.Error(1)
}

func (m *PrescriptionRepository) FindWithoutNumber(ctx context.Context, db *gorm.DB) ([]entity.Prescription, error) {
	args := m.Called(ctx, db)
	r0, _ := args.Get(0).([]entity.Prescription)
	return r0, args.Error(1)
}

func (m *PrescriptionRepository) BackfillDoctor(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}
