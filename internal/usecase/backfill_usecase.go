package usecase

import (
	"context"

	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BackfillResult counts the rows touched by a backfill run
type BackfillResult struct {
	SessionCodes        int   `json:"session_codes"`
	PrescriptionNumbers int   `json:"prescription_numbers"`
	PrescriptionDoctors int64 `json:"prescription_doctors"`
}

// BackfillUsecase repairs rows created before codes and doctor links were assigned on write
type BackfillUsecase interface {
	Run(ctx context.Context) (*BackfillResult, error)
}

type backfillUsecase struct {
	db               database.Transactor
	log              *logrus.Logger
	sessionRepo      repository.LiveAppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	codes            service.CodeAllocator
}

func NewBackfillUsecase(
	db database.Transactor,
	log *logrus.Logger,
	sessionRepo repository.LiveAppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	codes service.CodeAllocator,
) BackfillUsecase {
	return &backfillUsecase{
		db:               db,
		log:              log,
		sessionRepo:      sessionRepo,
		prescriptionRepo: prescriptionRepo,
		codes:            codes,
	}
}

// Run assigns LAP codes in creation order, fills empty prescription numbers and
// links prescriptions to the doctor of their appointment, all in one transaction
func (u *backfillUsecase) Run(ctx context.Context) (*BackfillResult, error) {
	result := &BackfillResult{}
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		sessions, err := u.sessionRepo.FindWithoutNumber(ctx, tx)
		if err != nil {
			u.log.Warnf("Failed to find sessions without code: %+v", err)
			return err
		}
		for i := range sessions {
			code, err := u.codes.NextSessionCode(ctx, tx)
			if err != nil {
				return err
			}
			sessions[i].LiveAppointmentNumber = &code
			if err := u.sessionRepo.Update(ctx, tx, &sessions[i]); err != nil {
				u.log.Warnf("Failed to assign code to session %s: %+v", sessions[i].ID, err)
				return err
			}
			result.SessionCodes++
		}

		prescriptions, err := u.prescriptionRepo.FindWithoutNumber(ctx, tx)
		if err != nil {
			u.log.Warnf("Failed to find prescriptions without number: %+v", err)
			return err
		}
		for i := range prescriptions {
			number, err := u.codes.NextPrescriptionNumber(ctx, tx)
			if err != nil {
				return err
			}
			prescriptions[i].PrescriptionNumber = number
			if err := u.prescriptionRepo.Update(ctx, tx, &prescriptions[i]); err != nil {
				u.log.Warnf("Failed to assign number to prescription %s: %+v", prescriptions[i].ID, err)
				return err
			}
			result.PrescriptionNumbers++
		}

		result.PrescriptionDoctors, err = u.prescriptionRepo.BackfillDoctor(ctx, tx)
		if err != nil {
			u.log.Warnf("Failed to backfill prescription doctors: %+v", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"session_codes":        result.SessionCodes,
		"prescription_numbers": result.PrescriptionNumbers,
		"prescription_doctors": result.PrescriptionDoctors,
	}).Info("Backfill completed")
	return result, nil
}
