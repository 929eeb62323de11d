package service

import (
	"context"

	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	liveSessionCodeSequence    = "live_appointment_code_seq"
	prescriptionNumberAttempts = 5
)

var ErrPrescriptionNumberExhausted = apperror.Internal("Failed to allocate a unique prescription number", nil)

// CodeAllocator hands out human-facing document codes
type CodeAllocator interface {
	// NextSessionCode draws the next LAP code from the database sequence
	NextSessionCode(ctx context.Context, db *gorm.DB) (string, error)
	// NextPrescriptionNumber generates a random RX number that is not yet taken
	NextPrescriptionNumber(ctx context.Context, db *gorm.DB) (string, error)
}

type codeAllocator struct {
	log              *logrus.Logger
	sequenceRepo     repository.SequenceRepository
	prescriptionRepo repository.PrescriptionRepository
	generate         func() string
}

func NewCodeAllocator(log *logrus.Logger, sequenceRepo repository.SequenceRepository, prescriptionRepo repository.PrescriptionRepository) CodeAllocator {
	return &codeAllocator{
		log:              log,
		sequenceRepo:     sequenceRepo,
		prescriptionRepo: prescriptionRepo,
		generate:         entity.NewPrescriptionNumber,
	}
}

func (a *codeAllocator) NextSessionCode(ctx context.Context, db *gorm.DB) (string, error) {
	value, err := a.sequenceRepo.Next(ctx, db, liveSessionCodeSequence)
	if err != nil {
		a.log.Warnf("Failed to draw live session code: %+v", err)
		return "", err
	}
	return entity.FormatSessionCode(value), nil
}

func (a *codeAllocator) NextPrescriptionNumber(ctx context.Context, db *gorm.DB) (string, error) {
	for attempt := 0; attempt < prescriptionNumberAttempts; attempt++ {
		number := a.generate()
		taken, err := a.prescriptionRepo.ExistsByNumber(ctx, db, number)
		if err != nil {
			a.log.Warnf("Failed to check prescription number %s: %+v", number, err)
			return "", err
		}
		if !taken {
			return number, nil
		}
		a.log.Debugf("Prescription number %s already taken, retrying", number)
	}
	return "", ErrPrescriptionNumberExhausted
}
