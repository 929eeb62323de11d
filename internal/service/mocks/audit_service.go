package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type AuditService struct {
	mock.Mock
}

func (m *AuditService) LogCreate(ctx context.Context, tx *gorm.DB, actor entity.Principal, action string, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *AuditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor entity.Principal, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *AuditService) LogDelete(ctx context.Context, tx *gorm.DB, actor entity.Principal, action string, entityName string, entityID string, oldValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, oldValue)
	return args.Error(0)
}

// Permissive accepts every audit call
func (m *AuditService) Permissive() *AuditService {
	m.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("LogDelete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}
