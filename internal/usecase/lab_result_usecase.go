package usecase

import (
	"context"
	"fmt"
	"strings"

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

const labResultDir = "lab_results"

var (
	ErrLabResultNotFound = apperror.NotFound("Lab result not found")
	ErrPatientNotFound   = apperror.NotFound("Patient not found")
)

type LabResultUsecase interface {
	Upload(ctx context.Context, principal entity.Principal, req *dto.UploadLabResultRequest, upload storage.Upload) (*dto.LabResultResponse, error)
	// ListMine returns the calling patient's own results
	ListMine(ctx context.Context, principal entity.Principal) ([]dto.LabResultResponse, error)
	ListForPatient(ctx context.Context, principal entity.Principal, patientID string) ([]dto.LabResultResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateLabResultRequest) (*dto.LabResultResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	Download(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error)
}

type labResultUsecase struct {
	db            database.Transactor
	log           *logrus.Logger
	userRepo      repository.UserRepository
	labResultRepo repository.LabResultRepository
	notifier      service.NotificationDispatcher
	audit         service.AuditService
	files         *storage.FileStorage
}

func NewLabResultUsecase(
	db database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	labResultRepo repository.LabResultRepository,
	notifier service.NotificationDispatcher,
	audit service.AuditService,
	files *storage.FileStorage,
) LabResultUsecase {
	return &labResultUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		labResultRepo: labResultRepo,
		notifier:      notifier,
		audit:         audit,
		files:         files,
	}
}

// Upload stores a lab document for a patient and notifies them.
// The stored file is removed again when the record cannot be written.
func (u *labResultUsecase) Upload(ctx context.Context, principal entity.Principal, req *dto.UploadLabResultRequest, upload storage.Upload) (*dto.LabResultResponse, error) {
	if !isLabStaff(principal) {
		return nil, ErrForbidden
	}
	patientID, err := parseID(req.PatientID)
	if err != nil {
		return nil, err
	}

	conn := u.db.Conn(ctx)
	patient, err := u.userRepo.FindByID(ctx, conn, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil || patient.Role != entity.RolePatient {
		return nil, ErrPatientNotFound
	}

	stored, err := u.files.Save(labResultDir, upload, storage.LabResultPolicy)
	if err != nil {
		return nil, err
	}

	result := &entity.LabResult{
		UserID:       patientID,
		LabType:      strings.TrimSpace(req.LabType),
		ResultFile:   stored.Path,
		FileType:     stored.ContentType,
		FileName:     stored.Name,
		UploadedByID: principal.ActorID(),
		Notes:        trimmed(req.Notes),
	}
	if err := u.labResultRepo.Create(ctx, conn, result); err != nil {
		u.log.Warnf("Failed to create lab result: %+v", err)
		if removeErr := u.files.Remove(stored.Path); removeErr != nil {
			u.log.Warnf("Failed to remove orphaned lab result file %s: %+v", stored.Path, removeErr)
		}
		return nil, err
	}
	result.User = patient

	u.log.Infof("Lab result uploaded: id=%s, patient=%s, type=%s", result.ID, patientID, result.LabType)
	u.audit.LogCreate(ctx, conn, principal, entity.AuditActionLabResultUpload, "lab_result", result.ID.String(), converter.LabResultToResponse(result))
	u.notifier.Notify(ctx, service.NotificationInput{
		Recipient: patientID,
		Title:     "New Lab Result Available",
		Message:   fmt.Sprintf("Your %s result has been uploaded and is ready to view.", result.LabType),
		Type:      entity.NotificationLabResult,
		Priority:  entity.PriorityMedium,
		RelatedID: service.RelatedID(result.ID),
	})
	return converter.LabResultToResponse(result), nil
}

func (u *labResultUsecase) ListMine(ctx context.Context, principal entity.Principal) ([]dto.LabResultResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, userID)
}

func (u *labResultUsecase) ListForPatient(ctx context.Context, principal entity.Principal, patientID string) ([]dto.LabResultResponse, error) {
	id, err := parseID(patientID)
	if err != nil {
		return nil, err
	}
	if !isLabStaff(principal) && !principal.Is(id) {
		return nil, ErrForbidden
	}
	return u.list(ctx, id)
}

func (u *labResultUsecase) list(ctx context.Context, userID uuid.UUID) ([]dto.LabResultResponse, error) {
	results, err := u.labResultRepo.FindByUserID(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list lab results: %+v", err)
		return nil, err
	}
	return converter.LabResultsToResponses(results), nil
}

// Update edits the lab type and notes; admins and lab technicians only
func (u *labResultUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateLabResultRequest) (*dto.LabResultResponse, error) {
	if !principal.IsAdmin() && !principal.HasRole(entity.RoleLabTech) {
		return nil, ErrForbidden
	}

	var oldValue, newValue *dto.LabResultResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		result, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		oldValue = converter.LabResultToResponse(result)

		if req.LabType != nil {
			if labType := strings.TrimSpace(*req.LabType); labType != "" {
				result.LabType = labType
			}
		}
		if req.Notes != nil {
			result.Notes = trimmed(req.Notes)
		}

		if err := u.labResultRepo.Update(ctx, tx, result); err != nil {
			u.log.Warnf("Failed to update lab result %s: %+v", id, err)
			return err
		}
		newValue = converter.LabResultToResponse(result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionLabResultUpdate, "lab_result", id.String(), oldValue, newValue)
	return newValue, nil
}

// Delete removes the record and then its file; a missing file is not an error
func (u *labResultUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrForbidden
	}

	conn := u.db.Conn(ctx)
	result, err := u.find(ctx, conn, id)
	if err != nil {
		return err
	}
	if err := u.labResultRepo.Delete(ctx, conn, id); err != nil {
		u.log.Warnf("Failed to delete lab result %s: %+v", id, err)
		return err
	}
	if err := u.files.Remove(result.ResultFile); err != nil {
		u.log.Warnf("Failed to remove lab result file %s: %+v", result.ResultFile, err)
	}

	u.audit.LogDelete(ctx, conn, principal, entity.AuditActionLabResultDelete, "lab_result", id.String(), converter.LabResultToResponse(result))
	return nil
}

func (u *labResultUsecase) Download(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error) {
	result, err := u.find(ctx, u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	if !principal.Is(result.UserID) && !isLabStaff(principal) {
		return nil, ErrLabResultNotFound
	}
	return u.files.Fetch(result.ResultFile, result.FileName)
}

func (u *labResultUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.LabResult, error) {
	result, err := u.labResultRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find lab result %s: %+v", id, err)
		return nil, err
	}
	if result == nil {
		return nil, ErrLabResultNotFound
	}
	return result, nil
}

// isLabStaff covers everyone allowed to upload and read any patient's results
func isLabStaff(principal entity.Principal) bool {
	return principal.IsAdmin() || principal.HasRole(entity.RoleLabTech, entity.RoleNurse, entity.RoleDoctor)
}
