package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type SequenceRepository struct {
	mock.Mock
}

func (m *SequenceRepository) Next(ctx context.Context, db *gorm.DB, sequence string) (int64, error) {
	args := m.Called(ctx, db, sequence)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}
