package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"gorm.io/gorm"
)

type RolePermissionRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.RolePermission, error)
	FindByRole(ctx context.Context, db *gorm.DB, role entity.Role) (*entity.RolePermission, error)
	Upsert(ctx context.Context, db *gorm.DB, permission *entity.RolePermission) error
}
