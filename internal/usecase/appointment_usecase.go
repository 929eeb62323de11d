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
	ErrAppointmentNotFound     = apperror.NotFound("Appointment not found")
	ErrAppointmentNotOwned     = apperror.NotFound("Appointment not found or unauthorized")
	ErrDoctorNotFound          = apperror.NotFound("Doctor not found")
	ErrSlotTaken               = apperror.Conflict("Doctor is not available at the requested time")
	ErrInvalidConsultationType = apperror.Validation("Invalid consultation type")
	ErrApproveAndReject        = apperror.Validation("Cannot approve and reject an appointment at the same time")
)

const (
	msgAppointmentApproved = "Appointment approved successfully"
	msgAppointmentRejected = "Appointment rejected successfully"
	msgAppointmentSaved    = "Appointment saved successfully"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, principal entity.Principal, req *dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, error)
	Approve(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.ApproveAppointmentRequest) (*dto.AppointmentResponse, error)
	Reject(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error)
	Save(ctx context.Context, principal entity.Principal, req *dto.SaveAppointmentRequest) (*dto.SaveAppointmentResponse, error)
	Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListMine(ctx context.Context, principal entity.Principal) ([]dto.AppointmentResponse, error)
	ListAll(ctx context.Context, req *dto.AppointmentFilterRequest) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              database.Transactor
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	notifier        service.NotificationDispatcher
	audit           service.AuditService
	now             func() time.Time
}

func NewAppointmentUsecase(
	db database.Transactor,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	notifier service.NotificationDispatcher,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		notifier:        notifier,
		audit:           audit,
		now:             time.Now,
	}
}

// Book creates a Pending/Scheduled appointment for the calling patient.
//
// Flow:
// 1. Validate type, date and time
// 2. Doctor must exist
// 3. The exact (doctor, date, time) slot must be free
// 4. Insert, then notify doctor and patient after commit
func (u *appointmentUsecase) Book(ctx context.Context, principal entity.Principal, req *dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, error) {
	patientID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	consultationType := entity.ConsultationType(req.ConsultationType)
	if !consultationType.IsValid() {
		return nil, ErrInvalidConsultationType
	}
	doctorID, err := parseID(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}
	date, err := parseDate(req.ConsultationDate)
	if err != nil {
		return nil, err
	}
	clock, err := parseClock(req.ConsultationTime)
	if err != nil {
		return nil, err
	}

	appointment := entity.NewAppointment(patientID, doctorID, consultationType, date, clock)
	appointment.Notes = trimmed(req.Notes)
	appointment.ReasonForVisit = trimmed(req.ReasonForVisit)

	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(ctx, tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		conflict, err := u.appointmentRepo.FindSlotConflict(ctx, tx, doctorID, date, clock, uuid.Nil)
		if err != nil {
			u.log.Warnf("Failed to check slot of doctor %s: %+v", doctorID, err)
			return err
		}
		if conflict != nil && conflict.BlocksSlot() {
			return ErrSlotTaken
		}

		if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			if isForeignKeyError(err, "doctor") {
				return ErrDoctorNotFound
			}
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, slot=%s", appointment.ID, doctorID, appointment.SlotLabel())
	u.audit.LogCreate(ctx, u.db.Conn(ctx), principal, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment))

	// Reload with doctor and patient for the notification texts
	full, err := u.appointmentRepo.FindByID(ctx, u.db.Conn(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		full = appointment
	}
	u.notifyBooked(ctx, full)

	return &dto.BookAppointmentResponse{
		Status:            "success",
		ConsultationID:    appointment.ID,
		AppointmentNumber: appointment.AppointmentNumber,
	}, nil
}

func (u *appointmentUsecase) Approve(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.ApproveAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	var number *string
	if req != nil {
		number = trimmed(req.AppointmentNumber)
	}

	appointment, err := u.mutate(ctx, principal, id, entity.AuditActionAppointmentApprove, func(_ *gorm.DB, a *entity.Appointment) error {
		return a.Approve(number, u.now())
	})
	if err != nil {
		return nil, err
	}

	u.notifyApproved(ctx, appointment)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Reject(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	appointment, err := u.mutate(ctx, principal, id, entity.AuditActionAppointmentReject, func(_ *gorm.DB, a *entity.Appointment) error {
		return a.Reject(u.now())
	})
	if err != nil {
		return nil, err
	}

	u.notifyRejected(ctx, appointment)
	return converter.AppointmentToResponse(appointment), nil
}

// Save is the single admin form: it edits scheduling fields and optionally approves or rejects
func (u *appointmentUsecase) Save(ctx context.Context, principal entity.Principal, req *dto.SaveAppointmentRequest) (*dto.SaveAppointmentResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	if req.Approve && req.Reject {
		return nil, ErrApproveAndReject
	}
	id, err := parseID(req.ConsultationID)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}

	edit, err := appointmentEditFromRequest(req)
	if err != nil {
		return nil, err
	}
	hasEdits := edit.ConsultationType != nil || edit.ConsultationDate != nil || edit.ConsultationTime != nil ||
		edit.Notes != nil || edit.MeetingLink != nil

	action := entity.AuditActionAppointmentUpdate
	message := msgAppointmentSaved
	switch {
	case req.Approve:
		action = entity.AuditActionAppointmentApprove
		message = msgAppointmentApproved
	case req.Reject:
		action = entity.AuditActionAppointmentReject
		message = msgAppointmentRejected
	}

	appointment, err := u.mutate(ctx, principal, id, action, func(tx *gorm.DB, a *entity.Appointment) error {
		slotMoved := edit.ConsultationDate != nil || edit.ConsultationTime != nil
		if hasEdits || req.Approve {
			if err := a.ApplyEdit(edit); err != nil {
				return err
			}
		}
		if slotMoved {
			if err := u.ensureSlotFree(ctx, tx, a); err != nil {
				return err
			}
		}

		number := trimmed(req.AppointmentNumber)
		switch {
		case req.Approve:
			return a.Approve(number, u.now())
		case req.Reject:
			return a.Reject(u.now())
		case req.AppointmentNumber != nil:
			a.AppointmentNumber = number
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case req.Approve:
		u.notifyApproved(ctx, appointment)
	case req.Reject:
		u.notifyRejected(ctx, appointment)
	default:
		u.notifyPatient(ctx, appointment, "Appointment Updated",
			fmt.Sprintf("Your appointment with %s has been updated. It is now scheduled for %s.", doctorName(appointment), appointment.SlotLabel()),
			entity.NotificationAppointment, entity.PriorityLow)
	}

	return &dto.SaveAppointmentResponse{
		Message:     message,
		Appointment: converter.AppointmentToResponse(appointment),
	}, nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	var appointment *entity.Appointment
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		found, err := u.appointmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if found == nil || !principal.Is(found.PatientID) {
			return ErrAppointmentNotOwned
		}
		if err := found.Cancel(); err != nil {
			return err
		}
		if err := u.appointmentRepo.Update(ctx, tx, found); err != nil {
			u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
			return err
		}
		appointment = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment cancelled: id=%s", id)
	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, entity.AuditActionAppointmentCancel, "appointment", id.String(),
		map[string]string{"status": string(entity.AppointmentScheduled)}, map[string]string{"status": string(appointment.Status)})

	if appointment.Doctor != nil {
		u.notifier.Notify(ctx, service.NotificationInput{
			Recipient: appointment.Doctor.UserID,
			Title:     "Appointment Cancelled",
			Message:   fmt.Sprintf("The appointment of %s for %s has been cancelled by the patient.", patientName(appointment), appointment.SlotLabel()),
			Type:      entity.NotificationAppointment,
			Priority:  entity.PriorityLow,
			RelatedID: service.RelatedID(appointment.ID),
		})
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListMine returns the patient's own appointments, or the doctor's schedule for doctors
func (u *appointmentUsecase) ListMine(ctx context.Context, principal entity.Principal) ([]dto.AppointmentResponse, error) {
	if principal.IsAdmin() {
		return u.ListAll(ctx, &dto.AppointmentFilterRequest{})
	}
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}

	conn := u.db.Conn(ctx)
	if principal.HasRole(entity.RoleDoctor) {
		doctor, err := u.doctorRepo.FindByUserID(ctx, conn, userID)
		if err != nil {
			u.log.Warnf("Failed to find doctor of user %s: %+v", userID, err)
			return nil, err
		}
		if doctor == nil {
			return []dto.AppointmentResponse{}, nil
		}
		appointments, err := u.appointmentRepo.FindByDoctorID(ctx, conn, doctor.ID)
		if err != nil {
			u.log.Warnf("Failed to find appointments of doctor %s: %+v", doctor.ID, err)
			return nil, err
		}
		return converter.AppointmentsToResponses(appointments), nil
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, conn, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments of patient %s: %+v", userID, err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListAll(ctx context.Context, req *dto.AppointmentFilterRequest) ([]dto.AppointmentResponse, error) {
	filter := &entity.AppointmentFilter{
		ApprovalStatus: entity.ApprovalStatus(req.ApprovalStatus),
		Status:         entity.AppointmentStatus(req.Status),
		StartAt:        req.StartDate,
		EndAt:          req.EndDate,
	}
	if req.DoctorID != "" {
		doctorID, err := parseID(req.DoctorID)
		if err != nil {
			return nil, err
		}
		filter.DoctorID = &doctorID
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, u.db.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || !canViewAppointment(principal, appointment) {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

// mutate loads the appointment, applies change and persists it in one transaction
func (u *appointmentUsecase) mutate(ctx context.Context, principal entity.Principal, id uuid.UUID, action string, change func(tx *gorm.DB, a *entity.Appointment) error) (*entity.Appointment, error) {
	var (
		appointment *entity.Appointment
		before      *dto.AppointmentResponse
	)
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		found, err := u.appointmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if found == nil {
			return ErrAppointmentNotFound
		}
		before = converter.AppointmentToResponse(found)

		if err := change(tx, found); err != nil {
			return err
		}
		if err := u.appointmentRepo.Update(ctx, tx, found); err != nil {
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return err
		}
		appointment = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.LogUpdate(ctx, u.db.Conn(ctx), principal, action, "appointment", id.String(), before, converter.AppointmentToResponse(appointment))
	return appointment, nil
}

func (u *appointmentUsecase) ensureSlotFree(ctx context.Context, tx *gorm.DB, a *entity.Appointment) error {
	conflict, err := u.appointmentRepo.FindSlotConflict(ctx, tx, a.DoctorID, a.ConsultationDate, a.ConsultationTime, a.ID)
	if err != nil {
		u.log.Warnf("Failed to check slot of doctor %s: %+v", a.DoctorID, err)
		return err
	}
	if conflict != nil && conflict.BlocksSlot() {
		return ErrSlotTaken
	}
	return nil
}

func (u *appointmentUsecase) notifyBooked(ctx context.Context, a *entity.Appointment) {
	if a.Doctor != nil {
		u.notifier.Notify(ctx, service.NotificationInput{
			Recipient: a.Doctor.UserID,
			Title:     "New Appointment Request",
			Message:   fmt.Sprintf("New appointment request from %s for %s", patientName(a), a.SlotLabel()),
			Type:      entity.NotificationAppointment,
			Priority:  entity.PriorityMedium,
			RelatedID: service.RelatedID(a.ID),
		})
	}
	u.notifyPatient(ctx, a, "Appointment Booked",
		fmt.Sprintf("Your appointment with %s has been booked for %s", doctorName(a), a.SlotLabel()),
		entity.NotificationAppointment, entity.PriorityLow)
}

func (u *appointmentUsecase) notifyApproved(ctx context.Context, a *entity.Appointment) {
	message := fmt.Sprintf("Your appointment with %s on %s has been approved.", doctorName(a), a.SlotLabel())
	if a.AppointmentNumber != nil {
		message += " Appointment number: " + *a.AppointmentNumber
	}
	if a.ConsultationType == entity.ConsultationTele && a.MeetingLink != nil {
		message += "\nMeeting link: " + *a.MeetingLink
	}
	u.notifyPatient(ctx, a, "Appointment Approved", message, entity.NotificationAppointment, entity.PriorityMedium)
}

func (u *appointmentUsecase) notifyRejected(ctx context.Context, a *entity.Appointment) {
	u.notifyPatient(ctx, a, "Appointment Rejected",
		fmt.Sprintf("Your appointment with %s on %s has been rejected.", doctorName(a), a.SlotLabel()),
		entity.NotificationUrgent, entity.PriorityHigh)
}

func (u *appointmentUsecase) notifyPatient(ctx context.Context, a *entity.Appointment, title, message string, kind entity.NotificationType, priority entity.NotificationPriority) {
	u.notifier.Notify(ctx, service.NotificationInput{
		Recipient: a.PatientID,
		Title:     title,
		Message:   message,
		Type:      kind,
		Priority:  priority,
		RelatedID: service.RelatedID(a.ID),
	})
}

func appointmentEditFromRequest(req *dto.SaveAppointmentRequest) (entity.AppointmentEdit, error) {
	edit := entity.AppointmentEdit{
		Notes:       req.Notes,
		MeetingLink: req.MeetingLink,
	}
	if req.ConsultationType != nil {
		t := entity.ConsultationType(*req.ConsultationType)
		if !t.IsValid() {
			return edit, ErrInvalidConsultationType
		}
		edit.ConsultationType = &t
	}
	if req.ConsultationDate != nil {
		date, err := parseDate(*req.ConsultationDate)
		if err != nil {
			return edit, err
		}
		edit.ConsultationDate = &date
	}
	if req.ConsultationTime != nil {
		clock, err := parseClock(*req.ConsultationTime)
		if err != nil {
			return edit, err
		}
		edit.ConsultationTime = &clock
	}
	return edit, nil
}

// canViewAppointment allows admins, the patient and the appointment's doctor
func canViewAppointment(principal entity.Principal, a *entity.Appointment) bool {
	if principal.IsAdmin() || principal.Is(a.PatientID) {
		return true
	}
	return isAppointmentDoctor(principal, a)
}

func isAppointmentDoctor(principal entity.Principal, a *entity.Appointment) bool {
	return a.Doctor != nil && principal.HasRole(entity.RoleDoctor) && principal.Is(a.Doctor.UserID)
}

func doctorName(a *entity.Appointment) string {
	if a.Doctor == nil {
		return "your doctor"
	}
	return a.Doctor.DisplayName()
}

func patientName(a *entity.Appointment) string {
	if a.Patient == nil {
		return "a patient"
	}
	return a.Patient.FullName()
}
