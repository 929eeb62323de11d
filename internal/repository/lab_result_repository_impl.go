package repository

import (
	"context"
	"errors"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labResultRepository struct{}

func NewLabResultRepository() domainRepo.LabResultRepository {
	return &labResultRepository{}
}

func (r *labResultRepository) Create(ctx context.Context, db *gorm.DB, result *entity.LabResult) error {
	return db.WithContext(ctx).Omit("User", "UploadedBy").Create(result).Error
}

func (r *labResultRepository) Update(ctx context.Context, db *gorm.DB, result *entity.LabResult) error {
	return db.WithContext(ctx).Omit("User", "UploadedBy").Save(result).Error
}

func (r *labResultRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.LabResult{}).Error
}

func (r *labResultRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LabResult, error) {
	var result entity.LabResult
	err := db.WithContext(ctx).Preload("UploadedBy.Profile").Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *labResultRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.LabResult, error) {
	var results []entity.LabResult
	err := db.WithContext(ctx).
		Preload("UploadedBy.Profile").
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
