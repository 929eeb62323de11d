package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type RolePermissionRepository struct {
	mock.Mock
}

func (m *RolePermissionRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.RolePermission, error) {
	args := m.Called(ctx, db)
	r0, _ := args.Get(0).([]entity.RolePermission)
	return r0, args.Error(1)
}

func (m *RolePermissionRepository) FindByRole(ctx context.Context, db *gorm.DB, role entity.Role) (*entity.RolePermission, error) {
	args := m.Called(ctx, db, role)
	r0, _ := args.Get(0).(*entity.RolePermission)
	return r0, args.Error(1)
}

func (m *RolePermissionRepository) Upsert(ctx context.Context, db *gorm.DB, permission *entity.RolePermission) error {
	args := m.Called(ctx, db, permission)
	return args.Error(0)
}
