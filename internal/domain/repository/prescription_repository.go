package repository

import (
	"context"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error
	Update(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindBySessionID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]entity.Prescription, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
	// FindFilesByDoctorID returns the stored file paths of prescriptions under the doctor's appointments
	FindFilesByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]string, error)
	ExistsByNumber(ctx context.Context, db *gorm.DB, number string) (bool, error)
	FindWithoutNumber(ctx context.Context, db *gorm.DB) ([]entity.Prescription, error)
	// BackfillDoctor sets doctor_id from live_appointment → appointment where missing
	BackfillDoctor(ctx context.Context, db *gorm.DB) (int64, error)
}
