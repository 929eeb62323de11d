package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type CodeAllocator struct {
	mock.Mock
}

func (m *CodeAllocator) NextSessionCode(ctx context.Context, db *gorm.DB) (string, error) {
	args := m.Called(ctx, db)
	return args.String(0), args.Error(1)
}

func (m *CodeAllocator) NextPrescriptionNumber(ctx context.Context, db *gorm.DB) (string, error) {
	args := m.Called(ctx, db)
	return args.String(0), args.Error(1)
}
