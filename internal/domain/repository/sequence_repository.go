package repository

import (
	"context"

	"gorm.io/gorm"
)

// SequenceRepository hands out values from database-native monotonic sequences
type SequenceRepository interface {
	Next(ctx context.Context, db *gorm.DB, sequence string) (int64, error)
}
