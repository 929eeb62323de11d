package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type BookedServiceRepository struct {
	mock.Mock
}

func (m *BookedServiceRepository) Create(ctx context.Context, db *gorm.DB, booking *entity.BookedService) error {
	args := m.Called(ctx, db, booking)
	return args.Error(0)
}

func (m *BookedServiceRepository) Update(ctx context.Context, db *gorm.DB, booking *entity.BookedService) error {
	args := m.Called(ctx, db, booking)
	return args.Error(0)
}

func (m *BookedServiceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *BookedServiceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.BookedService, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.BookedService)
	return r0, args.Error(1)
}

func (m *BookedServiceRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.BookedService, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).([]entity.BookedService)
	return r0, args.Error(1)
}

func (m *BookedServiceRepository) FindAll(ctx context.Context, db *gorm.DB, status entity.BookedServiceStatus) ([]entity.BookedService, error) {
	args := m.Called(ctx, db, status)
	r0, _ := args.Get(0).([]entity.BookedService)
	return r0, args.Error(1)
}
