package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MedicalServiceRepository struct {
	mock.Mock
}

func (m *MedicalServiceRepository) Create(ctx context.Context, db *gorm.DB, service *entity.MedicalService) error {
	args := m.Called(ctx, db, service)
	return args.Error(0)
}

func (m *MedicalServiceRepository) FindAll(ctx context.Context, db *gorm.DB, activeOnly bool, limit int, offset int) ([]entity.MedicalService, int64, error) {
	args := m.Called(ctx, db, activeOnly, limit, offset)
	r0, _ := args.Get(0).([]entity.MedicalService)
	r1, _ := args.Get(1).(int64)
	return r0, r1, args.Error(2)
}

func (m *MedicalServiceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalService, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.MedicalService)
	return r0, args.Error(1)
}

func (m *MedicalServiceRepository) Update(ctx context.Context, db *gorm.DB, service *entity.MedicalService) error {
	args := m.Called(ctx, db, service)
	return args.Error(0)
}

func (m *MedicalServiceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}
