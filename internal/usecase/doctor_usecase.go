package usecase

import (
	"context"
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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrLicenseTaken = apperror.Conflict("License number already exists")

type DoctorUsecase interface {
	Create(ctx context.Context, principal entity.Principal, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	// List returns every doctor; activeOnly restricts it to bookable ones
	List(ctx context.Context, activeOnly bool) ([]dto.DoctorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	// Delete removes the doctor's appointments, the doctor and the user account together.
	// Files left behind by the cascade are removed after commit.
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.DeleteDoctorResponse, error)
}

type doctorUsecase struct {
	db               database.Transactor
	log              *logrus.Logger
	userRepo         repository.UserRepository
	profileRepo      repository.UserProfileRepository
	doctorRepo       repository.DoctorRepository
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	notificationRepo repository.NotificationRepository
	tokens           *service.TokenStore
	audit            service.AuditService
	files            *storage.FileStorage
}

func NewDoctorUsecase(
	db database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	notificationRepo repository.NotificationRepository,
	tokens *service.TokenStore,
	audit service.AuditService,
	files *storage.FileStorage,
) DoctorUsecase {
	return &doctorUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		notificationRepo: notificationRepo,
		tokens:           tokens,
		audit:            audit,
		files:            files,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	user := &entity.User{
		Username: strings.TrimSpace(req.Username),
		Email:    email,
		Password: string(hashedPassword),
		Role:     entity.RoleDoctor,
		Status:   true,
		IsActive: true,
	}
	doctor := &entity.Doctor{
		Specialization:    strings.TrimSpace(req.Specialization),
		LicenseNumber:     strings.TrimSpace(req.LicenseNumber),
		YearsOfExperience: req.YearsOfExperience,
		Availability:      converter.AvailabilityFromRequest(req.Availability),
		ContactInfo:       strings.TrimSpace(req.ContactInfo),
	}

	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := createUserRow(ctx, tx, u.userRepo, u.log, user); err != nil {
			return err
		}

		profile := &entity.UserProfile{
			UserID:    user.ID,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     &email,
		}
		if err := u.profileRepo.Save(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return err
		}
		user.Profile = profile

		doctor.UserID = user.ID
		if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
			if isDuplicateKeyError(err, "license_number") {
				return ErrLicenseTaken
			}
			u.log.Warnf("Failed to create doctor: %+v", err)
			return err
		}
		doctor.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)
	u.log.Infof("Doctor created: id=%s, username=%s", doctor.ID, user.Username)
	u.audit.LogCreate(ctx, u.db.Conn(ctx), principal, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), response)
	return response, nil
}

func (u *doctorUsecase) List(ctx context.Context, activeOnly bool) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db.Conn(ctx), activeOnly)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

// Update edits the doctor record. Deactivating the account also revokes its live tokens.
func (u *doctorUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var oldValue, newValue *dto.DoctorResponse
	var deactivated bool
	var userID uuid.UUID

	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		oldValue = converter.DoctorToResponse(doctor)
		userID = doctor.UserID

		if req.Specialization != nil {
			doctor.Specialization = strings.TrimSpace(*req.Specialization)
		}
		if req.LicenseNumber != nil {
			doctor.LicenseNumber = strings.TrimSpace(*req.LicenseNumber)
		}
		if req.YearsOfExperience != nil {
			doctor.YearsOfExperience = *req.YearsOfExperience
		}
		if req.Availability != nil {
			doctor.Availability = converter.AvailabilityFromRequest(req.Availability)
		}
		if req.ContactInfo != nil {
			doctor.ContactInfo = strings.TrimSpace(*req.ContactInfo)
		}

		if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
			if isDuplicateKeyError(err, "license_number") {
				return ErrLicenseTaken
			}
			u.log.Warnf("Failed to update doctor: %+v", err)
			return err
		}

		if req.IsActive != nil && doctor.User != nil && doctor.User.IsActive != *req.IsActive {
			deactivated = !*req.IsActive
			doctor.User.IsActive = *req.IsActive
			if err := u.userRepo.Update(ctx, tx, doctor.User); err != nil {
				u.log.Warnf("Failed to update doctor account: %+v", err)
				return err
			}
		}

		newValue = converter.DoctorToResponse(doctor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deactivated {
		if err := u.tokens.RevokeUser(ctx, userID); err != nil {
			u.log.Warnf("Failed to revoke tokens of deactivated doctor %s: %+v", id, err)
		}
	}

	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionDoctorUpdate, "doctor", id.String(), oldValue, newValue)
	return newValue, nil
}

func (u *doctorUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.DeleteDoctorResponse, error) {
	var oldValue *dto.DoctorResponse
	var userID uuid.UUID
	var appointmentsDeleted int64
	var orphans []string

	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		oldValue = converter.DoctorToResponse(doctor)
		userID = doctor.UserID

		orphans, err = u.cascadedFiles(ctx, tx, doctor)
		if err != nil {
			return err
		}

		appointmentsDeleted, err = u.appointmentRepo.DeleteByDoctorID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to delete appointments of doctor %s: %+v", id, err)
			return err
		}
		if err := u.doctorRepo.Delete(ctx, tx, id); err != nil {
			u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
			return err
		}
		if err := u.userRepo.Delete(ctx, tx, userID); err != nil {
			u.log.Warnf("Failed to delete user %s: %+v", userID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Delete all tokens of the removed account
	if err := u.tokens.RevokeUser(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted doctor %s: %+v", id, err)
	}

	removed := removeStoredFiles(u.files, u.log, orphans)

	u.log.Infof("Doctor deleted: id=%s, appointments_deleted=%d, files_removed=%d/%d", id, appointmentsDeleted, removed, len(orphans))
	u.audit.LogDelete(ctx, u.db.Conn(ctx), principal, entity.AuditActionDoctorDelete, "doctor", id.String(), oldValue)
	return &dto.DeleteDoctorResponse{AppointmentsDeleted: appointmentsDeleted}, nil
}

// cascadedFiles lists stored files whose rows go with the doctor:
// prescription documents, the account's profile photo and notification attachments.
func (u *doctorUsecase) cascadedFiles(ctx context.Context, tx *gorm.DB, doctor *entity.Doctor) ([]string, error) {
	files, err := u.prescriptionRepo.FindFilesByDoctorID(ctx, tx, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list prescription files of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	profile, err := u.profileRepo.FindByUserID(ctx, tx, doctor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find profile of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	if profile != nil && profile.PhotoPath != nil {
		files = append(files, *profile.PhotoPath)
	}

	notifications, err := u.notificationRepo.FindByUserID(ctx, tx, doctor.UserID, 0)
	if err != nil {
		u.log.Warnf("Failed to list notifications of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	for _, n := range notifications {
		if n.File != nil {
			files = append(files, *n.File)
		}
	}
	return files, nil
}

func (u *doctorUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
