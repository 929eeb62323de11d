package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	args := m.Called(ctx, db, user)
	return args.Error(0)
}

func (m *UserRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	args := m.Called(ctx, db, user)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.User)
	return r0, args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	args := m.Called(ctx, db, username)
	r0, _ := args.Get(0).(*entity.User)
	return r0, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(ctx, db, email)
	r0, _ := args.Get(0).(*entity.User)
	return r0, args.Error(1)
}

func (m *UserRepository) FindActiveByRole(ctx context.Context, db *gorm.DB, role entity.Role) ([]entity.User, error) {
	args := m.Called(ctx, db, role)
	r0, _ := args.Get(0).([]entity.User)
	return r0, args.Error(1)
}

func (m *UserRepository) TouchLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}
