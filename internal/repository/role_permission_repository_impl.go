package repository

import (
	"context"
	"errors"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rolePermissionRepository struct{}

func NewRolePermissionRepository() domainRepo.RolePermissionRepository {
	return &rolePermissionRepository{}
}

func (r *rolePermissionRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.RolePermission, error) {
	var permissions []entity.RolePermission
	if err := db.WithContext(ctx).Order("role ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *rolePermissionRepository) FindByRole(ctx context.Context, db *gorm.DB, role entity.Role) (*entity.RolePermission, error) {
	var permission entity.RolePermission
	err := db.WithContext(ctx).Where("role = ?", role).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

func (r *rolePermissionRepository) Upsert(ctx context.Context, db *gorm.DB, permission *entity.RolePermission) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_enabled", "updated_at"}),
	}).Create(permission).Error
}
