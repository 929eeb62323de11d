package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	args := m.Called(ctx, db, doctor)
	return args.Error(0)
}

func (m *DoctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	args := m.Called(ctx, db, doctor)
	return args.Error(0)
}

func (m *DoctorRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *DoctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.Doctor)
	return r0, args.Error(1)
}

func (m *DoctorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).(*entity.Doctor)
	return r0, args.Error(1)
}

func (m *DoctorRepository) FindAll(ctx context.Context, db *gorm.DB, activeOnly bool) ([]entity.Doctor, error) {
	args := m.Called(ctx, db, activeOnly)
	r0, _ := args.Get(0).([]entity.Doctor)
	return r0, args.Error(1)
}
