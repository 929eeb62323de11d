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
	"medisafe/internal/service"
	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = apperror.NotFound("Booking not found")
	ErrBookingInPast       = apperror.Validation("Booking date and time must be in the future")
	ErrServiceRequired     = apperror.Validation("Either service_id or service_name is required")
	ErrBookingNotCancelled = apperror.Conflict("Only pending or confirmed bookings can be cancelled")
	ErrInvalidBookingState = apperror.Validation("Invalid status filter")
)

type BookedServiceUsecase interface {
	Book(ctx context.Context, principal entity.Principal, req *dto.BookServiceRequest) (*dto.BookedServiceResponse, error)
	ListMine(ctx context.Context, principal entity.Principal) ([]dto.BookedServiceResponse, error)
	Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.BookedServiceResponse, error)
	// ListAll is the admin view; an empty status lists every booking
	ListAll(ctx context.Context, status string) ([]dto.BookedServiceResponse, error)
	UpdateStatus(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateBookedServiceStatusRequest) (*dto.BookedServiceResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
}

type bookedServiceUsecase struct {
	db          database.Transactor
	log         *logrus.Logger
	bookingRepo repository.BookedServiceRepository
	serviceRepo repository.MedicalServiceRepository
	audit       service.AuditService
	now         func() time.Time
}

func NewBookedServiceUsecase(
	db database.Transactor,
	log *logrus.Logger,
	bookingRepo repository.BookedServiceRepository,
	serviceRepo repository.MedicalServiceRepository,
	audit service.AuditService,
) BookedServiceUsecase {
	return &bookedServiceUsecase{
		db:          db,
		log:         log,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		audit:       audit,
		now:         time.Now,
	}
}

// Book creates a Pending booking. A catalog service fixes the name and snapshots the price.
func (u *bookedServiceUsecase) Book(ctx context.Context, principal entity.Principal, req *dto.BookServiceRequest) (*dto.BookedServiceResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.BookingDate)
	if err != nil {
		return nil, err
	}
	clock, err := parseClock(req.BookingTime)
	if err != nil {
		return nil, err
	}
	now := u.now()
	at, err := entity.CombineDateClock(date, clock, now.Location())
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !at.After(now) {
		return nil, ErrBookingInPast
	}

	booking := &entity.BookedService{
		UserID:      userID,
		ServiceName: strings.TrimSpace(req.ServiceName),
		BookingDate: date,
		BookingTime: clock,
		Status:      entity.BookedServicePending,
		Notes:       trimmed(req.Notes),
	}

	conn := u.db.Conn(ctx)
	if req.ServiceID != nil && strings.TrimSpace(*req.ServiceID) != "" {
		serviceID, err := parseID(strings.TrimSpace(*req.ServiceID))
		if err != nil {
			return nil, err
		}
		medicalService, err := u.serviceRepo.FindByID(ctx, conn, serviceID)
		if err != nil {
			u.log.Warnf("Failed to find medical service %s: %+v", serviceID, err)
			return nil, err
		}
		if medicalService == nil || !medicalService.IsActive {
			return nil, ErrServiceNotFound
		}
		booking.ServiceID = &medicalService.ID
		booking.ServiceName = medicalService.Name
		booking.Price = priceSnapshot(medicalService)
		booking.Service = medicalService
	}
	if booking.ServiceName == "" {
		return nil, ErrServiceRequired
	}

	if err := u.bookingRepo.Create(ctx, conn, booking); err != nil {
		u.log.Warnf("Failed to create booked service: %+v", err)
		return nil, err
	}

	response := converter.BookedServiceToResponse(booking)
	u.audit.LogCreate(ctx, conn, principal, entity.AuditActionServiceBook, "booked_service", booking.ID.String(), response)
	return response, nil
}

func (u *bookedServiceUsecase) ListMine(ctx context.Context, principal entity.Principal) ([]dto.BookedServiceResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	bookings, err := u.bookingRepo.FindByUserID(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list booked services: %+v", err)
		return nil, err
	}
	return converter.BookedServicesToResponses(bookings), nil
}

// Cancel is available to the owner while the booking is Pending or Confirmed
func (u *bookedServiceUsecase) Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.BookedServiceResponse, error) {
	return u.transition(ctx, principal, id, func(b *entity.BookedService) error {
		if !principal.Is(b.UserID) {
			return ErrBookingNotFound
		}
		if b.Status != entity.BookedServicePending && b.Status != entity.BookedServiceConfirmed {
			return ErrBookingNotCancelled
		}
		return b.TransitionTo(entity.BookedServiceCancelled)
	})
}

func (u *bookedServiceUsecase) ListAll(ctx context.Context, status string) ([]dto.BookedServiceResponse, error) {
	filter := entity.BookedServiceStatus(status)
	if filter != "" && !filter.IsValid() {
		return nil, ErrInvalidBookingState
	}

	bookings, err := u.bookingRepo.FindAll(ctx, u.db.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list booked services: %+v", err)
		return nil, err
	}
	return converter.BookedServicesToResponses(bookings), nil
}

func (u *bookedServiceUsecase) UpdateStatus(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateBookedServiceStatusRequest) (*dto.BookedServiceResponse, error) {
	return u.transition(ctx, principal, id, func(b *entity.BookedService) error {
		return b.TransitionTo(entity.BookedServiceStatus(req.Status))
	})
}

func (u *bookedServiceUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	conn := u.db.Conn(ctx)
	booking, err := u.find(ctx, conn, id)
	if err != nil {
		return err
	}
	if err := u.bookingRepo.Delete(ctx, conn, id); err != nil {
		u.log.Warnf("Failed to delete booked service %s: %+v", id, err)
		return err
	}

	u.audit.LogDelete(ctx, conn, principal, entity.AuditActionServiceBookingDelete, "booked_service", id.String(), converter.BookedServiceToResponse(booking))
	return nil
}

func (u *bookedServiceUsecase) transition(ctx context.Context, principal entity.Principal, id uuid.UUID, change func(b *entity.BookedService) error) (*dto.BookedServiceResponse, error) {
	var oldStatus entity.BookedServiceStatus
	var response *dto.BookedServiceResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		booking, err := u.find(ctx, tx, id)
		if err != nil {
			return err
		}
		oldStatus = booking.Status
		if err := change(booking); err != nil {
			return err
		}
		if booking.Status == oldStatus {
			response = converter.BookedServiceToResponse(booking)
			return nil
		}
		if err := u.bookingRepo.Update(ctx, tx, booking); err != nil {
			u.log.Warnf("Failed to update booked service %s: %+v", id, err)
			return err
		}
		response = converter.BookedServiceToResponse(booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entity.BookedServiceStatus(response.Status) != oldStatus {
		u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionServiceBookingUpdate, "booked_service", id.String(),
			map[string]string{"status": string(oldStatus)}, map[string]string{"status": response.Status})
	}
	return response, nil
}

func (u *bookedServiceUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.BookedService, error) {
	booking, err := u.bookingRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find booked service %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
