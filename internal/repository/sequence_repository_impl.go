package repository

import (
	"context"

	domainRepo "medisafe/internal/domain/repository"

	"gorm.io/gorm"
)

type sequenceRepository struct{}

func NewSequenceRepository() domainRepo.SequenceRepository {
	return &sequenceRepository{}
}

func (r *sequenceRepository) Next(ctx context.Context, db *gorm.DB, sequence string) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", sequence).Scan(&value).Error
	return value, err
}
