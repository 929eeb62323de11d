package repository

import (
	"context"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, db *gorm.DB, notification *entity.Notification) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error)
	// FindByUserID returns the user's notifications newest first
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]entity.Notification, error)
	FindByType(ctx context.Context, db *gorm.DB, notificationType entity.NotificationType) ([]entity.Notification, error)
	CountUnread(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	FindOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]entity.Notification, error)
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (int64, error)
}
