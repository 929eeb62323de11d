package usecase

import (
	"context"
	"fmt"
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
	ErrAppointmentNotApproved = apperror.Conflict("Appointment must be approved before starting a session")
	ErrAppointmentCancelled   = apperror.Conflict("Cannot start a session for a cancelled appointment")
	ErrSessionNotFound        = apperror.NotFound("Session not found")
	ErrNoSessionToRestart     = apperror.NotFound("No existing session found to restart")
)

// Start actions
const (
	SessionActionStart    = "start"
	SessionActionContinue = "continue"
	SessionActionRestart  = "restart"
)

type LiveSessionUsecase interface {
	Start(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.StartSessionResponse, error)
	Restart(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.StartSessionResponse, error)
	UpdateData(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error)
	Get(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.LiveSessionResponse, error)
	Complete(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.CompleteSessionResponse, error)
	Cancel(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.LiveSessionResponse, error)
}

type liveSessionUsecase struct {
	db              database.Transactor
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	sessionRepo     repository.LiveAppointmentRepository
	codes           service.CodeAllocator
	notifier        service.NotificationDispatcher
	audit           service.AuditService
	now             func() time.Time
}

func NewLiveSessionUsecase(
	db database.Transactor,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	sessionRepo repository.LiveAppointmentRepository,
	codes service.CodeAllocator,
	notifier service.NotificationDispatcher,
	audit service.AuditService,
) LiveSessionUsecase {
	return &liveSessionUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		sessionRepo:     sessionRepo,
		codes:           codes,
		notifier:        notifier,
		audit:           audit,
		now:             time.Now,
	}
}

// Start opens, continues or offers to restart the session of an approved appointment
func (u *liveSessionUsecase) Start(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.StartSessionResponse, error) {
	var response *dto.StartSessionResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.loadAppointment(ctx, tx, principal, appointmentID, true)
		if err != nil {
			return err
		}
		if !appointment.IsApproved() {
			return ErrAppointmentNotApproved
		}
		if appointment.Status == entity.AppointmentCancelled {
			return ErrAppointmentCancelled
		}

		session, err := u.sessionRepo.FindByAppointmentID(ctx, tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find session of appointment %s: %+v", appointmentID, err)
			return err
		}

		if session == nil {
			session = entity.NewLiveSession(appointmentID, u.now())
			code, err := u.codes.NextSessionCode(ctx, tx)
			if err != nil {
				return err
			}
			session.LiveAppointmentNumber = &code
			if err := u.sessionRepo.Create(ctx, tx, session); err != nil {
				u.log.Warnf("Failed to create session for appointment %s: %+v", appointmentID, err)
				return err
			}
			response = startResponse(session, SessionActionStart, "Session started")
			return nil
		}

		switch session.Status {
		case entity.SessionCompleted:
			response = startResponse(session, SessionActionRestart, "Previous session completed. Ready to restart.")
			return nil
		case entity.SessionInProgress:
			response = startResponse(session, SessionActionContinue, "Session already in progress")
			return nil
		}

		if err := session.Resume(u.now()); err != nil {
			return err
		}
		if err := u.sessionRepo.Update(ctx, tx, session); err != nil {
			u.log.Warnf("Failed to resume session %s: %+v", session.ID, err)
			return err
		}
		response = startResponse(session, SessionActionStart, "Session started")
		return nil
	})
	if err != nil {
		return nil, err
	}

	if response.Action == SessionActionStart {
		u.log.Infof("Live session started: id=%s, appointment=%s", response.LiveSessionID, appointmentID)
		u.audit.LogCreate(ctx, u.db.Conn(ctx), principal, entity.AuditActionSessionStart, "live_appointment", response.LiveSessionID.String(), response)
	}
	return response, nil
}

// Restart reopens an existing session; clinical data is kept
func (u *liveSessionUsecase) Restart(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.StartSessionResponse, error) {
	var response *dto.StartSessionResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := u.loadAppointment(ctx, tx, principal, appointmentID, true); err != nil {
			return err
		}
		session, err := u.sessionRepo.FindByAppointmentID(ctx, tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find session of appointment %s: %+v", appointmentID, err)
			return err
		}
		if session == nil {
			return ErrNoSessionToRestart
		}

		session.Restart(u.now())
		if err := u.sessionRepo.Update(ctx, tx, session); err != nil {
			u.log.Warnf("Failed to restart session %s: %+v", session.ID, err)
			return err
		}
		response = startResponse(session, SessionActionRestart, "Session restarted")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (u *liveSessionUsecase) UpdateData(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error) {
	var updatedAt time.Time
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		session, err := u.loadSession(ctx, tx, principal, appointmentID, true)
		if err != nil {
			return err
		}
		if err := session.ApplyClinicalUpdate(converter.ClinicalUpdateFromRequest(req)); err != nil {
			return err
		}
		if err := u.sessionRepo.Update(ctx, tx, session); err != nil {
			u.log.Warnf("Failed to update session %s: %+v", session.ID, err)
			return err
		}
		updatedAt = session.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = u.now()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.UpdateSessionResponse{UpdatedAt: updatedAt}, nil
}

func (u *liveSessionUsecase) Get(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.LiveSessionResponse, error) {
	session, err := u.loadSession(ctx, u.db.Conn(ctx), principal, appointmentID, false)
	if err != nil {
		return nil, err
	}
	return converter.LiveSessionToResponse(session), nil
}

// Complete closes the session and marks the appointment Completed in the same transaction
func (u *liveSessionUsecase) Complete(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.CompleteSessionResponse, error) {
	var (
		appointment *entity.Appointment
		session     *entity.LiveAppointment
	)
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.loadAppointment(ctx, tx, principal, appointmentID, true)
		if err != nil {
			return err
		}
		session, err = u.sessionRepo.FindByAppointmentID(ctx, tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find session of appointment %s: %+v", appointmentID, err)
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}

		if err := session.Complete(u.now()); err != nil {
			return err
		}
		if err := u.sessionRepo.Update(ctx, tx, session); err != nil {
			u.log.Warnf("Failed to complete session %s: %+v", session.ID, err)
			return err
		}

		// A restarted session completes an appointment that is already Completed
		if appointment.Status != entity.AppointmentCompleted {
			if err := appointment.Complete(); err != nil {
				return err
			}
			if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
				u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Live session completed: id=%s, duration=%d", session.ID, *session.SessionDuration)
	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionSessionComplete, "live_appointment", session.ID.String(),
		map[string]string{"status": string(entity.SessionInProgress)}, map[string]string{"status": string(session.Status)})

	u.notifier.Notify(ctx, service.NotificationInput{
		Recipient: appointment.PatientID,
		Title:     "Appointment Completed",
		Message:   fmt.Sprintf("Your consultation with %s on %s has been completed.", doctorName(appointment), appointment.SlotLabel()),
		Type:      entity.NotificationAppointment,
		Priority:  entity.PriorityLow,
		RelatedID: service.RelatedID(appointment.ID),
	})

	return &dto.CompleteSessionResponse{
		CompletedAt: *session.CompletedAt,
		Duration:    *session.SessionDuration,
	}, nil
}

func (u *liveSessionUsecase) Cancel(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) (*dto.LiveSessionResponse, error) {
	var session *entity.LiveAppointment
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		session, err = u.loadSession(ctx, tx, principal, appointmentID, true)
		if err != nil {
			return err
		}
		if err := session.Cancel(); err != nil {
			return err
		}
		if err := u.sessionRepo.Update(ctx, tx, session); err != nil {
			u.log.Warnf("Failed to cancel session %s: %+v", session.ID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.LiveSessionToResponse(session), nil
}

// loadAppointment enforces that only the appointment's doctor may act on its session.
// Admins may read but not write.
func (u *liveSessionUsecase) loadAppointment(ctx context.Context, db *gorm.DB, principal entity.Principal, appointmentID uuid.UUID, write bool) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if isAppointmentDoctor(principal, appointment) || !write && principal.IsAdmin() {
		return appointment, nil
	}
	return nil, ErrAppointmentNotOwned
}

func (u *liveSessionUsecase) loadSession(ctx context.Context, db *gorm.DB, principal entity.Principal, appointmentID uuid.UUID, write bool) (*entity.LiveAppointment, error) {
	if _, err := u.loadAppointment(ctx, db, principal, appointmentID, write); err != nil {
		return nil, err
	}
	session, err := u.sessionRepo.FindByAppointmentID(ctx, db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find session of appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func startResponse(session *entity.LiveAppointment, action, message string) *dto.StartSessionResponse {
	return &dto.StartSessionResponse{
		Action:                action,
		LiveSessionID:         session.ID,
		LiveAppointmentNumber: session.LiveAppointmentNumber,
		Status:                string(session.Status),
		Message:               message,
	}
}
