package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalServiceRepository interface {
	Create(ctx context.Context, db *gorm.DB, service *entity.MedicalService) error
	FindAll(ctx context.Context, db *gorm.DB, activeOnly bool, limit, offset int) ([]entity.MedicalService, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalService, error)
	Update(ctx context.Context, db *gorm.DB, service *entity.MedicalService) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
