package mocks

import (
	"context"

	"medisafe/internal/domain/entity"
	"medisafe/internal/service"

	"github.com/stretchr/testify/mock"
)

type NotificationDispatcher struct {
	mock.Mock
}

func (m *NotificationDispatcher) Notify(ctx context.Context, input service.NotificationInput) bool {
	args := m.Called(ctx, input)
	return args.Bool(0)
}

func (m *NotificationDispatcher) NotifyRole(ctx context.Context, role entity.Role, input service.NotificationInput) int {
	args := m.Called(ctx, role, input)
	return args.Int(0)
}
