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

const profilePhotoDir = "profile_photos"

var ErrProfilePhotoMissing = apperror.NotFound("Profile photo not found")

type ProfileUsecase interface {
	Get(ctx context.Context, principal entity.Principal) (*dto.ProfileResponse, error)
	Update(ctx context.Context, principal entity.Principal, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadPhoto(ctx context.Context, principal entity.Principal, upload storage.Upload) (*dto.ProfileResponse, error)
	DownloadPhoto(ctx context.Context, principal entity.Principal) (*storage.Download, error)
}

type profileUsecase struct {
	db          database.Transactor
	log         *logrus.Logger
	profileRepo repository.UserProfileRepository
	notifier    service.NotificationDispatcher
	audit       service.AuditService
	files       *storage.FileStorage
	now         func() time.Time
}

func NewProfileUsecase(
	db database.Transactor,
	log *logrus.Logger,
	profileRepo repository.UserProfileRepository,
	notifier service.NotificationDispatcher,
	audit service.AuditService,
	files *storage.FileStorage,
) ProfileUsecase {
	return &profileUsecase{
		db:          db,
		log:         log,
		profileRepo: profileRepo,
		notifier:    notifier,
		audit:       audit,
		files:       files,
		now:         time.Now,
	}
}

// Get returns the caller's profile, creating an empty one on first access
func (u *profileUsecase) Get(ctx context.Context, principal entity.Principal) (*dto.ProfileResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	profile, err := u.loadOrCreate(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		return nil, err
	}
	return converter.ProfileToResponse(profile), nil
}

func (u *profileUsecase) Update(ctx context.Context, principal entity.Principal, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}
	birthday, err := parseOptionalDate(req.Birthday)
	if err != nil {
		return nil, err
	}

	var oldValue, newValue *dto.ProfileResponse
	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		profile, err := u.loadOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		oldValue = converter.ProfileToResponse(profile)

		if req.FirstName != nil {
			profile.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			profile.LastName = strings.TrimSpace(*req.LastName)
		}
		setIfProvided(&profile.MiddleName, req.MiddleName)
		if birthday != nil {
			profile.Birthday = birthday
		}
		setIfProvided(&profile.Email, req.Email)
		setIfProvided(&profile.Sex, req.Sex)
		setIfProvided(&profile.CivilStatus, req.CivilStatus)
		setIfProvided(&profile.Address, req.Address)
		setIfProvided(&profile.ContactPerson, req.ContactPerson)
		setIfProvided(&profile.RelationshipToPatient, req.RelationshipToPatient)
		setIfProvided(&profile.ContactNumber, req.ContactNumber)
		setIfProvided(&profile.PhoneNumber, req.PhoneNumber)
		setIfProvided(&profile.PhoneType, req.PhoneType)

		if req.DataPrivacyConsent != nil && *req.DataPrivacyConsent != profile.DataPrivacyConsent {
			profile.DataPrivacyConsent = *req.DataPrivacyConsent
			if profile.DataPrivacyConsent {
				now := u.now()
				profile.ConsentDate = &now
			} else {
				profile.ConsentDate = nil
			}
		}

		if err := u.profileRepo.Save(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to update profile: %+v", err)
			return err
		}
		newValue = converter.ProfileToResponse(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionProfileUpdate, "user_profile", userID.String(), oldValue, newValue)
	u.notifier.Notify(ctx, service.NotificationInput{
		Recipient: userID,
		Title:     "Profile Updated",
		Message:   "Your profile information has been updated successfully.",
		Type:      entity.NotificationAccount,
		Priority:  entity.PriorityLow,
	})
	return newValue, nil
}

// UploadPhoto replaces the profile photo. The previous file is removed once the new path is saved.
func (u *profileUsecase) UploadPhoto(ctx context.Context, principal entity.Principal, upload storage.Upload) (*dto.ProfileResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	stored, err := u.files.Save(profilePhotoDir, upload, storage.PhotoPolicy)
	if err != nil {
		return nil, err
	}

	var previous *string
	var response *dto.ProfileResponse
	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		profile, err := u.loadOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		previous = profile.PhotoPath
		profile.PhotoPath = &stored.Path
		if err := u.profileRepo.Save(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to save profile photo: %+v", err)
			return err
		}
		response = converter.ProfileToResponse(profile)
		return nil
	})
	if err != nil {
		if removeErr := u.files.Remove(stored.Path); removeErr != nil {
			u.log.Warnf("Failed to remove orphaned profile photo %s: %+v", stored.Path, removeErr)
		}
		return nil, err
	}

	if previous != nil && *previous != stored.Path {
		if err := u.files.Remove(*previous); err != nil {
			u.log.Warnf("Failed to remove previous profile photo %s: %+v", *previous, err)
		}
	}

	u.notifier.Notify(ctx, service.NotificationInput{
		Recipient: userID,
		Title:     "Profile Photo Updated",
		Message:   "Your profile photo has been updated successfully.",
		Type:      entity.NotificationAccount,
		Priority:  entity.PriorityLow,
	})
	return response, nil
}

func (u *profileUsecase) DownloadPhoto(ctx context.Context, principal entity.Principal) (*storage.Download, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.FindByUserID(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil || profile.PhotoPath == nil {
		return nil, ErrProfilePhotoMissing
	}
	return u.files.Fetch(*profile.PhotoPath, "")
}

func (u *profileUsecase) loadOrCreate(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, db, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &entity.UserProfile{UserID: userID}
	if err := u.profileRepo.Save(ctx, db, profile); err != nil {
		u.log.Warnf("Failed to create profile: %+v", err)
		return nil, err
	}
	return profile, nil
}

// setIfProvided stores a trimmed copy of src; a blank value clears the field
func setIfProvided(dst **string, src *string) {
	if src != nil {
		*dst = trimmed(src)
	}
}
