package mocks

import (
	"context"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationUsecase struct {
	mock.Mock
}

func (m *NotificationUsecase) List(ctx context.Context, principal entity.Principal, limit int) ([]dto.NotificationResponse, error) {
	args := m.Called(ctx, principal, limit)
	return notificationsResult(args)
}

func (m *NotificationUsecase) UnreadCount(ctx context.Context, principal entity.Principal) (*dto.UnreadCountResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UnreadCountResponse), args.Error(1)
}

func (m *NotificationUsecase) MarkRead(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

func (m *NotificationUsecase) MarkAllRead(ctx context.Context, principal entity.Principal) (*dto.MarkAllReadResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MarkAllReadResponse), args.Error(1)
}

func (m *NotificationUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

func (m *NotificationUsecase) DownloadFile(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error) {
	args := m.Called(ctx, principal, id)
	return downloadResult(args)
}

func (m *NotificationUsecase) SendMessage(ctx context.Context, principal entity.Principal, req *dto.SendMessageRequest) (*dto.NotificationResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationResponse), args.Error(1)
}

func (m *NotificationUsecase) ListPasswordResets(ctx context.Context, principal entity.Principal) ([]dto.NotificationResponse, error) {
	args := m.Called(ctx, principal)
	return notificationsResult(args)
}

func (m *NotificationUsecase) Cleanup(ctx context.Context, days int, dryRun bool) (*dto.CleanupResponse, error) {
	args := m.Called(ctx, days, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CleanupResponse), args.Error(1)
}

func notificationsResult(args mock.Arguments) ([]dto.NotificationResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.NotificationResponse), args.Error(1)
}
