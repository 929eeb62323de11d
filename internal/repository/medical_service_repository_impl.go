package repository

import (
	"context"
	"errors"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalServiceRepository struct{}

func NewMedicalServiceRepository() domainRepo.MedicalServiceRepository {
	return &medicalServiceRepository{}
}

func (r *medicalServiceRepository) Create(ctx context.Context, db *gorm.DB, service *entity.MedicalService) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *medicalServiceRepository) FindAll(ctx context.Context, db *gorm.DB, activeOnly bool, limit, offset int) ([]entity.MedicalService, int64, error) {
	var services []entity.MedicalService
	var total int64

	query := db.WithContext(ctx).Model(&entity.MedicalService{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Limit(limit).Offset(offset).Order("name ASC").Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *medicalServiceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalService, error) {
	var service entity.MedicalService
	err := db.WithContext(ctx).Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *medicalServiceRepository) Update(ctx context.Context, db *gorm.DB, service *entity.MedicalService) error {
	return db.WithContext(ctx).Save(service).Error
}

func (r *medicalServiceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.MedicalService{}).Error
}
