package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabResultRepository interface {
	Create(ctx context.Context, db *gorm.DB, result *entity.LabResult) error
	Update(ctx context.Context, db *gorm.DB, result *entity.LabResult) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LabResult, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.LabResult, error)
}
