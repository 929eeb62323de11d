package repository

import (
	"context"
	"errors"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookedServiceRepository struct{}

func NewBookedServiceRepository() domainRepo.BookedServiceRepository {
	return &bookedServiceRepository{}
}

func (r *bookedServiceRepository) Create(ctx context.Context, db *gorm.DB, booking *entity.BookedService) error {
	return db.WithContext(ctx).Omit("User", "Service").Create(booking).Error
}

func (r *bookedServiceRepository) Update(ctx context.Context, db *gorm.DB, booking *entity.BookedService) error {
	return db.WithContext(ctx).Omit("User", "Service").Save(booking).Error
}

func (r *bookedServiceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BookedService{}).Error
}

func (r *bookedServiceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.BookedService, error) {
	var booking entity.BookedService
	err := db.WithContext(ctx).Preload("User.Profile").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookedServiceRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.BookedService, error) {
	var bookings []entity.BookedService
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date DESC, booking_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookedServiceRepository) FindAll(ctx context.Context, db *gorm.DB, status entity.BookedServiceStatus) ([]entity.BookedService, error) {
	var bookings []entity.BookedService
	query := db.WithContext(ctx).Preload("User.Profile")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("booking_date DESC, booking_time DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
