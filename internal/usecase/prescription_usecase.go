package usecase

import (
	"context"
	"strings"
	"time"

	"medisafe/internal/converter"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/infrastructure/storage"
	"medisafe/internal/service"
	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConsultationNotCompleted = apperror.Conflict("Consultation must be completed first")
	ErrPrescriptionNotFound     = apperror.NotFound("Prescription not found")
	ErrMedicinesRequired        = apperror.Validation("At least one medicine is required")
	ErrMedicineNameRequired     = apperror.Validation("Each medicine requires a name")
	ErrPrescriptionDeleteDenied = apperror.Forbidden("Only Super Admin can delete prescriptions")
	ErrPrescriptionFileMissing  = apperror.NotFound("Prescription has no file")
)

const prescriptionFileDir = "prescriptions"

type PrescriptionUsecase interface {
	Create(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	Sign(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.SignPrescriptionRequest) (*dto.PrescriptionResponse, error)
	MarkPrinted(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error)
	Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error)
	AttachFile(ctx context.Context, principal entity.Principal, id uuid.UUID, upload storage.Upload) (*dto.PrescriptionResponse, error)
	DownloadFile(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	ListBySession(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) ([]dto.PrescriptionResponse, error)
	Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error)
	ListForPatient(ctx context.Context, principal entity.Principal) ([]dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               database.Transactor
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	sessionRepo      repository.LiveAppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	codes            service.CodeAllocator
	audit            service.AuditService
	files            *storage.FileStorage
	now              func() time.Time
}

func NewPrescriptionUsecase(
	db database.Transactor,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	sessionRepo repository.LiveAppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	codes service.CodeAllocator,
	audit service.AuditService,
	files *storage.FileStorage,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		sessionRepo:      sessionRepo,
		prescriptionRepo: prescriptionRepo,
		codes:            codes,
		audit:            audit,
		files:            files,
		now:              time.Now,
	}
}

// Create issues a draft prescription for a completed session
func (u *prescriptionUsecase) Create(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	medicines, err := validMedicines(req.Medicines)
	if err != nil {
		return nil, err
	}
	if len(medicines) == 0 {
		return nil, ErrMedicinesRequired
	}
	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}

	var prescription *entity.Prescription
	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(ctx, tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if !isAppointmentDoctor(principal, appointment) {
			return ErrAppointmentNotOwned
		}

		session, err := u.sessionRepo.FindByAppointmentID(ctx, tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find session of appointment %s: %+v", appointmentID, err)
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		if !session.IsCompleted() {
			return ErrConsultationNotCompleted
		}

		number, err := u.codes.NextPrescriptionNumber(ctx, tx)
		if err != nil {
			return err
		}

		doctorID := appointment.DoctorID
		prescription = &entity.Prescription{
			LiveAppointmentID:    session.ID,
			DoctorID:             &doctorID,
			PrescriptionNumber:   number,
			Medicines:            medicines,
			Instructions:         trimmed(req.Instructions),
			FollowUpDate:         followUp,
			FollowUpInstructions: trimmed(req.FollowUpInstructions),
			Status:               entity.PrescriptionDraft,
		}
		if err := u.prescriptionRepo.Create(ctx, tx, prescription); err != nil {
			u.log.Warnf("Failed to create prescription: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Prescription created: id=%s, number=%s", prescription.ID, prescription.PrescriptionNumber)
	u.audit.LogCreate(ctx, u.db.Conn(ctx), principal, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), converter.PrescriptionToResponse(prescription))

	return &dto.CreatePrescriptionResponse{
		PrescriptionID:     prescription.ID,
		PrescriptionNumber: prescription.PrescriptionNumber,
	}, nil
}

func (u *prescriptionUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	medicines, err := validMedicines(req.Medicines)
	if err != nil {
		return nil, err
	}
	if medicines != nil && len(medicines) == 0 {
		return nil, ErrMedicinesRequired
	}
	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}

	edit := entity.PrescriptionEdit{
		Medicines:            medicines,
		Instructions:         req.Instructions,
		FollowUpDate:         followUp,
		FollowUpInstructions: req.FollowUpInstructions,
	}
	return u.mutate(ctx, principal, id, func(p *entity.Prescription) error {
		return p.ApplyEdit(edit)
	})
}

func (u *prescriptionUsecase) Sign(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.SignPrescriptionRequest) (*dto.PrescriptionResponse, error) {
	response, err := u.mutate(ctx, principal, id, func(p *entity.Prescription) error {
		return p.Sign(req.Signature, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionPrescriptionSign, "prescription", id.String(),
		map[string]string{"status": string(entity.PrescriptionDraft)}, map[string]string{"status": response.Status})
	return response, nil
}

func (u *prescriptionUsecase) MarkPrinted(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	return u.mutate(ctx, principal, id, func(p *entity.Prescription) error {
		return p.MarkPrinted()
	})
}

func (u *prescriptionUsecase) Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	return u.mutate(ctx, principal, id, func(p *entity.Prescription) error {
		return p.Cancel()
	})
}

// AttachFile stores a new document for the prescription and removes the previous one.
// The status is left unchanged.
func (u *prescriptionUsecase) AttachFile(ctx context.Context, principal entity.Principal, id uuid.UUID, upload storage.Upload) (*dto.PrescriptionResponse, error) {
	stored, err := u.files.Save(prescriptionFileDir, upload, storage.PrescriptionPolicy)
	if err != nil {
		return nil, err
	}

	var previous *string
	response, err := u.mutate(ctx, principal, id, func(p *entity.Prescription) error {
		previous = p.PrescriptionFile
		p.PrescriptionFile = &stored.Path
		return nil
	})
	if err != nil {
		// Compensate: the record was not updated, drop the orphaned file
		if removeErr := u.files.Remove(stored.Path); removeErr != nil {
			u.log.Warnf("Failed to remove orphaned prescription file %s: %+v", stored.Path, removeErr)
		}
		return nil, err
	}

	if previous != nil && *previous != stored.Path {
		if err := u.files.Remove(*previous); err != nil {
			u.log.Warnf("Failed to remove previous prescription file %s: %+v", *previous, err)
		}
	}
	return response, nil
}

func (u *prescriptionUsecase) DownloadFile(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error) {
	prescription, err := u.find(ctx, u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	if !canViewPrescription(principal, prescription) {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.PrescriptionFile == nil {
		return nil, ErrPrescriptionFileMissing
	}
	return u.files.Fetch(*prescription.PrescriptionFile, prescription.PrescriptionNumber+"."+storage.Extension(*prescription.PrescriptionFile))
}

// Delete is reserved to the super admin; the file goes first, then the record
func (u *prescriptionUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	if !principal.IsSuperAdmin() {
		return ErrPrescriptionDeleteDenied
	}

	conn := u.db.Conn(ctx)
	prescription, err := u.find(ctx, conn, id)
	if err != nil {
		return err
	}

	if err := u.prescriptionRepo.Delete(ctx, conn, id); err != nil {
		u.log.Warnf("Failed to delete prescription %s: %+v", id, err)
		return err
	}
	// the row is gone; a file that cannot be removed is only logged
	if prescription.PrescriptionFile != nil {
		if err := u.files.Remove(*prescription.PrescriptionFile); err != nil {
			u.log.Warnf("Failed to remove prescription file %s: %+v", *prescription.PrescriptionFile, err)
		}
	}

	u.log.Infof("Prescription deleted: id=%s, number=%s", id, prescription.PrescriptionNumber)
	u.audit.LogDelete(ctx, conn, principal, entity.AuditActionPrescriptionDelete, "prescription", id.String(), converter.PrescriptionToResponse(prescription))
	return nil
}

func (u *prescriptionUsecase) ListBySession(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) ([]dto.PrescriptionResponse, error) {
	conn := u.db.Conn(ctx)
	appointment, err := u.appointmentRepo.FindByID(ctx, conn, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || !canViewAppointment(principal, appointment) {
		return nil, ErrAppointmentNotFound
	}

	session, err := u.sessionRepo.FindByAppointmentID(ctx, conn, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find session of appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if session == nil {
		return []dto.PrescriptionResponse{}, nil
	}

	prescriptions, err := u.prescriptionRepo.FindBySessionID(ctx, conn, session.ID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions of session %s: %+v", session.ID, err)
		return nil, err
	}
	return converter.PrescriptionsToResponses(prescriptions), nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.find(ctx, u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	if !canViewPrescription(principal, prescription) {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionToResponse(prescription), nil
}

// ListForPatient returns the calling patient's non-cancelled prescriptions
func (u *prescriptionUsecase) ListForPatient(ctx context.Context, principal entity.Principal) ([]dto.PrescriptionResponse, error) {
	patientID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}
	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, u.db.Conn(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions of patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.PrescriptionsToResponses(prescriptions), nil
}

// mutate applies change to a prescription owned by the calling doctor
func (u *prescriptionUsecase) mutate(ctx context.Context, principal entity.Principal, id uuid.UUID, change func(p *entity.Prescription) error) (*dto.PrescriptionResponse, error) {
	var prescription *entity.Prescription
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		found, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if !isPrescriptionDoctor(principal, found) {
			return ErrPrescriptionNotFound
		}
		if err := change(found); err != nil {
			return err
		}
		if err := u.prescriptionRepo.Update(ctx, tx, found); err != nil {
			u.log.Warnf("Failed to update prescription %s: %+v", id, err)
			return err
		}
		prescription = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	prescription, err := u.prescriptionRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return prescription, nil
}

// validMedicines converts and checks a medicine list. A nil list stays nil.
func validMedicines(requests []dto.MedicineRequest) (entity.Medicines, error) {
	medicines := converter.MedicinesFromRequest(requests)
	for i := range medicines {
		medicines[i].Name = strings.TrimSpace(medicines[i].Name)
		if medicines[i].Name == "" {
			return nil, ErrMedicineNameRequired
		}
	}
	return medicines, nil
}

func prescriptionAppointment(p *entity.Prescription) *entity.Appointment {
	if p.LiveAppointment == nil {
		return nil
	}
	return p.LiveAppointment.Appointment
}

func isPrescriptionDoctor(principal entity.Principal, p *entity.Prescription) bool {
	appointment := prescriptionAppointment(p)
	return appointment != nil && isAppointmentDoctor(principal, appointment)
}

func canViewPrescription(principal entity.Principal, p *entity.Prescription) bool {
	if principal.IsAdmin() {
		return true
	}
	appointment := prescriptionAppointment(p)
	return appointment != nil && canViewAppointment(principal, appointment)
}
