package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProfileRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error)
	// Save inserts or updates the profile
	Save(ctx context.Context, db *gorm.DB, profile *entity.UserProfile) error
}
