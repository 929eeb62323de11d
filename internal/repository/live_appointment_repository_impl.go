package repository

import (
	"context"
	"errors"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type liveAppointmentRepository struct{}

func NewLiveAppointmentRepository() domainRepo.LiveAppointmentRepository {
	return &liveAppointmentRepository{}
}

func (r *liveAppointmentRepository) Create(ctx context.Context, db *gorm.DB, session *entity.LiveAppointment) error {
	return db.WithContext(ctx).Omit("Appointment", "Prescriptions").Create(session).Error
}

func (r *liveAppointmentRepository) Update(ctx context.Context, db *gorm.DB, session *entity.LiveAppointment) error {
	return db.WithContext(ctx).Omit("Appointment", "Prescriptions").Save(session).Error
}

func (r *liveAppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LiveAppointment, error) {
	var session entity.LiveAppointment
	err := db.WithContext(ctx).
		Preload("Appointment.Doctor.User.Profile").
		Preload("Appointment.Patient.Profile").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *liveAppointmentRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.LiveAppointment, error) {
	var session entity.LiveAppointment
	err := db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *liveAppointmentRepository) FindWithoutNumber(ctx context.Context, db *gorm.DB) ([]entity.LiveAppointment, error) {
	var sessions []entity.LiveAppointment
	err := db.WithContext(ctx).
		Where("live_appointment_number IS NULL OR live_appointment_number = ''").
		Order("created_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
