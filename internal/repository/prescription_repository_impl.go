package repository

import (
	"context"
	"errors"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	return db.WithContext(ctx).Omit("LiveAppointment", "Doctor").Create(prescription).Error
}

func (r *prescriptionRepository) Update(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	return db.WithContext(ctx).Omit("LiveAppointment", "Doctor").Save(prescription).Error
}

func (r *prescriptionRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Prescription{}).Error
}

func (r *prescriptionRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.WithContext(ctx).
		Preload("LiveAppointment.Appointment.Doctor.User.Profile").
		Preload("LiveAppointment.Appointment.Patient.Profile").
		Where("id = ?", id).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.WithContext(ctx).
		Where("live_appointment_id = ?", sessionID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.WithContext(ctx).
		Preload("Doctor.User.Profile").
		Joins("JOIN live_appointments ON live_appointments.id = prescriptions.live_appointment_id").
		Joins("JOIN appointments ON appointments.id = live_appointments.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Where("prescriptions.status <> ?", entity.PrescriptionCancelled).
		Order("prescriptions.created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindFilesByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]string, error) {
	var files []string
	if err := r.doctorFilesQuery(db.WithContext(ctx), doctorID).Pluck("prescriptions.prescription_file", &files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *prescriptionRepository) doctorFilesQuery(db *gorm.DB, doctorID uuid.UUID) *gorm.DB {
	return db.Model(&entity.Prescription{}).
		Joins("JOIN live_appointments ON live_appointments.id = prescriptions.live_appointment_id").
		Joins("JOIN appointments ON appointments.id = live_appointments.appointment_id").
		Where("appointments.doctor_id = ?", doctorID).
		Where("prescriptions.prescription_file IS NOT NULL AND prescriptions.prescription_file <> ''")
}

func (r *prescriptionRepository) ExistsByNumber(ctx context.Context, db *gorm.DB, number string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Prescription{}).
		Where("prescription_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *prescriptionRepository) FindWithoutNumber(ctx context.Context, db *gorm.DB) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.WithContext(ctx).
		Where("prescription_number IS NULL OR prescription_number = ''").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) BackfillDoctor(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).Exec(`
		UPDATE prescriptions p
		SET doctor_id = a.doctor_id
		FROM live_appointments l
		JOIN appointments a ON a.id = l.appointment_id
		WHERE p.live_appointment_id = l.id AND p.doctor_id IS NULL`)
	return result.RowsAffected, result.Error
}
