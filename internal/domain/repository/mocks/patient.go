package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(ctx, db, patient)
	return args.Error(0)
}

func (m *PatientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(ctx, db, patient)
	return args.Error(0)
}

func (m *PatientRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).(*entity.Patient)
	return r0, args.Error(1)
}
