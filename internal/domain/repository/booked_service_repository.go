package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookedServiceRepository interface {
	Create(ctx context.Context, db *gorm.DB, booking *entity.BookedService) error
	Update(ctx context.Context, db *gorm.DB, booking *entity.BookedService) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.BookedService, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.BookedService, error)
	FindAll(ctx context.Context, db *gorm.DB, status entity.BookedServiceStatus) ([]entity.BookedService, error)
}
