package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type LabResultRepository struct {
	mock.Mock
}

func (m *LabResultRepository) Create(ctx context.Context, db *gorm.DB, result *entity.LabResult) error {
	args := m.Called(ctx, db, result)
	return args.Error(0)
}

func (m *LabResultRepository) Update(ctx context.Context, db *gorm.DB, result *entity.LabResult) error {
	args := m.Called(ctx, db, result)
	return args.Error(0)
}

func (m *LabResultRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *LabResultRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LabResult, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.LabResult)
	return r0, args.Error(1)
}

func (m *LabResultRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.LabResult, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).([]entity.LabResult)
	return r0, args.Error(1)
}
