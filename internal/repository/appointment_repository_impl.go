package repository

import (
	"context"
	"errors"
	"time"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor", "LiveSession").Create(appointment).Error
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor", "LiveSession").Save(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.withRelations(db.WithContext(ctx)).Where("appointments.id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// slotConflictQuery matches the exact (doctor, date, time) triple only; overlapping
// durations are not considered. Only Scheduled rows hold a slot, so approved
// appointments that were later cancelled or completed free it again.
func (r *appointmentRepository) slotConflictQuery(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID uuid.UUID) *gorm.DB {
	q := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND consultation_date = ? AND consultation_time = ?", doctorID, date.Format(entity.DateLayout), clock).
		Where("status = ?", entity.AppointmentScheduled)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

func (r *appointmentRepository) FindSlotConflict(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.slotConflictQuery(db.WithContext(ctx), doctorID, date, clock, excludeID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.withRelations(db.WithContext(ctx)).
		Where("appointments.patient_id = ?", patientID).
		Order("consultation_date DESC, consultation_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.withRelations(db.WithContext(ctx)).
		Where("appointments.doctor_id = ?", doctorID).
		Order("consultation_date DESC, consultation_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := r.withRelations(db.WithContext(ctx))

	if filter != nil {
		if filter.ApprovalStatus != "" {
			query = query.Where("approval_status = ?", filter.ApprovalStatus)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.StartAt != "" {
			query = query.Where("consultation_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("consultation_date <= ?", filter.EndAt)
		}
	}

	err := query.Order("consultation_date DESC, consultation_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) DeleteByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("doctor_id = ?", doctorID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient.Profile").Preload("Doctor.User.Profile").Preload("LiveSession")
}
