package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
	// FindByEmail matches case-insensitively
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	// FindActiveByRole returns users of role with status and is_active both true
	FindActiveByRole(ctx context.Context, db *gorm.DB, role entity.Role) ([]entity.User, error)
	TouchLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
