package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

type RolePermissionService struct {
	mock.Mock
}

func (m *RolePermissionService) IsEnabled(ctx context.Context, role entity.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

func (m *RolePermissionService) Invalidate(ctx context.Context, role entity.Role) {
	m.Called(ctx, role)
}
