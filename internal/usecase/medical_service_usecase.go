package usecase

import (
	"context"
	"strings"

	"medisafe/internal/converter"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/service"
	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound  = apperror.NotFound("Service not found")
	ErrServiceNameTaken = apperror.Conflict("A service with this name already exists")
	ErrNegativePrice    = apperror.Validation("Price must not be negative")
)

type MedicalServiceUsecase interface {
	Create(ctx context.Context, principal entity.Principal, req *dto.CreateMedicalServiceRequest) (*dto.MedicalServiceResponse, error)
	// GetAll pages through the catalog; activeOnly hides disabled entries
	GetAll(ctx context.Context, activeOnly bool, page, limit int) (*dto.MedicalServiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalServiceResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateMedicalServiceRequest) (*dto.MedicalServiceResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
}

type medicalServiceUsecase struct {
	db          database.Transactor
	log         *logrus.Logger
	serviceRepo repository.MedicalServiceRepository
	audit       service.AuditService
}

func NewMedicalServiceUsecase(
	db database.Transactor,
	log *logrus.Logger,
	serviceRepo repository.MedicalServiceRepository,
	audit service.AuditService,
) MedicalServiceUsecase {
	return &medicalServiceUsecase{
		db:          db,
		log:         log,
		serviceRepo: serviceRepo,
		audit:       audit,
	}
}

func (u *medicalServiceUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateMedicalServiceRequest) (*dto.MedicalServiceResponse, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	medicalService := &entity.MedicalService{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price.Round(2),
		IsActive:    true,
	}

	conn := u.db.Conn(ctx)
	if err := u.serviceRepo.Create(ctx, conn, medicalService); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrServiceNameTaken
		}
		u.log.Warnf("Failed to create medical service: %+v", err)
		return nil, err
	}

	response := converter.MedicalServiceToResponse(medicalService)
	u.audit.LogCreate(ctx, conn, principal, entity.AuditActionServiceCreate, "medical_service", medicalService.ID.String(), response)
	return response, nil
}

func (u *medicalServiceUsecase) GetAll(ctx context.Context, activeOnly bool, page, limit int) (*dto.MedicalServiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	services, total, err := u.serviceRepo.FindAll(ctx, u.db.Conn(ctx), activeOnly, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list medical services: %+v", err)
		return nil, err
	}

	return &dto.MedicalServiceListResponse{
		Services: converter.MedicalServicesToResponses(services),
		Total:    total,
	}, nil
}

func (u *medicalServiceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalServiceResponse, error) {
	medicalService, err := u.find(ctx, u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.MedicalServiceToResponse(medicalService), nil
}

func (u *medicalServiceUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateMedicalServiceRequest) (*dto.MedicalServiceResponse, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	var oldValue, newValue *dto.MedicalServiceResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		medicalService, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		oldValue = converter.MedicalServiceToResponse(medicalService)

		medicalService.Name = strings.TrimSpace(req.Name)
		medicalService.Description = strings.TrimSpace(req.Description)
		medicalService.Price = req.Price.Round(2)
		if req.IsActive != nil {
			medicalService.IsActive = *req.IsActive
		}

		if err := u.serviceRepo.Update(ctx, tx, medicalService); err != nil {
			if isDuplicateKeyError(err, "name") {
				return ErrServiceNameTaken
			}
			u.log.Warnf("Failed to update medical service %s: %+v", id, err)
			return err
		}
		newValue = converter.MedicalServiceToResponse(medicalService)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionServiceUpdate, "medical_service", id.String(), oldValue, newValue)
	return newValue, nil
}

// Delete keeps existing bookings; their service reference is cleared by the schema
func (u *medicalServiceUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	conn := u.db.Conn(ctx)
	medicalService, err := u.find(ctx, conn, id)
	if err != nil {
		return err
	}
	if err := u.serviceRepo.Delete(ctx, conn, id); err != nil {
		u.log.Warnf("Failed to delete medical service %s: %+v", id, err)
		return err
	}

	u.audit.LogDelete(ctx, conn, principal, entity.AuditActionServiceDelete, "medical_service", id.String(), converter.MedicalServiceToResponse(medicalService))
	return nil
}

func (u *medicalServiceUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalService, error) {
	medicalService, err := u.serviceRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find medical service %s: %+v", id, err)
		return nil, err
	}
	if medicalService == nil {
		return nil, ErrServiceNotFound
	}
	return medicalService, nil
}

// priceSnapshot copies a catalog price onto a booking
func priceSnapshot(medicalService *entity.MedicalService) decimal.NullDecimal {
	if medicalService == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(medicalService.Price)
}
