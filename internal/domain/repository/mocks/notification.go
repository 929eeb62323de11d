package mocks

import (
	"context"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, db *gorm.DB, notification *entity.Notification) error {
	args := m.Called(ctx, db, notification)
	return args.Error(0)
}

func (m *NotificationRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.Notification)
	return r0, args.Error(1)
}

func (m *NotificationRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]entity.Notification, error) {
	args := m.Called(ctx, db, userID, limit)
	r0, _ := args.Get(0).([]entity.Notification)
	return r0, args.Error(1)
}

func (m *NotificationRepository) FindByType(ctx context.Context, db *gorm.DB, notificationType entity.NotificationType) ([]entity.Notification, error) {
	args := m.Called(ctx, db, notificationType)
	r0, _ := args.Get(0).([]entity.Notification)
	return r0, args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, userID)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *NotificationRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *NotificationRepository) FindOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]entity.Notification, error) {
	args := m.Called(ctx, db, cutoff)
	r0, _ := args.Get(0).([]entity.Notification)
	return r0, args.Error(1)
}

func (m *NotificationRepository) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, ids)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}
