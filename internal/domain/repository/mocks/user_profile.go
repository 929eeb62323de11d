package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type UserProfileRepository struct {
	mock.Mock
}

func (m *UserProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).(*entity.UserProfile)
	return r0, args.Error(1)
}

func (m *UserProfileRepository) Save(ctx context.Context, db *gorm.DB, profile *entity.UserProfile) error {
	args := m.Called(ctx, db, profile)
	return args.Error(0)
}
