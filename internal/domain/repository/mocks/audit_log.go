package mocks

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, db *gorm.DB, entry *entity.AuditLog) error {
	args := m.Called(ctx, db, entry)
	return args.Error(0)
}

func (m *AuditLogRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter, limit, offset int) ([]entity.AuditLog, int64, error) {
	args := m.Called(ctx, db, filter, limit, offset)
	r0, _ := args.Get(0).([]entity.AuditLog)
	r1, _ := args.Get(1).(int64)
	return r0, r1, args.Error(2)
}

func (m *AuditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, db, id)
	r0, _ := args.Get(0).(*entity.AuditLog)
	return r0, args.Error(1)
}
