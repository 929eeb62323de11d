package entity

import (
	"strings"
	"time"

	"medisafe/pkg/apperror"

	"github.com/google/uuid"
)

// ConsultationType is the delivery mode of a consultation
type ConsultationType string

const (
	ConsultationF2F  ConsultationType = "F2F"
	ConsultationTele ConsultationType = "Tele"
)

func (t ConsultationType) IsValid() bool {
	return t == ConsultationF2F || t == ConsultationTele
}

// ApprovalStatus is the administrative gate of an appointment
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// AppointmentStatus is the operational status of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// DefaultAppointmentDuration is the slot length in minutes assigned at booking
const DefaultAppointmentDuration = 30

var (
	ErrAppointmentNumberRequired = apperror.Validation("Appointment number is required to approve an appointment.")
	ErrMeetingLinkRequired       = apperror.Validation("Meeting link is required for tele-consultation")
)

// Appointment (aka consultation) between a patient user and a doctor
type Appointment struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentNumber *string           `gorm:"type:varchar(50)" json:"appointment_number,omitempty"`
	PatientID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_slot" json:"doctor_id"`
	ConsultationType  ConsultationType  `gorm:"type:varchar(20);not null" json:"consultation_type"`
	ConsultationDate  time.Time         `gorm:"type:date;not null;index:idx_appointments_slot" json:"consultation_date"`
	ConsultationTime  string            `gorm:"type:time;not null;index:idx_appointments_slot" json:"consultation_time"`
	ApprovalStatus    ApprovalStatus    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"approval_status"`
	ApprovedAt        *time.Time        `json:"approved_at,omitempty"`
	Status            AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	Notes             *string           `gorm:"type:text" json:"notes,omitempty"`
	MeetingLink       *string           `gorm:"type:text" json:"meeting_link,omitempty"`
	ReasonForVisit    *string           `gorm:"type:text" json:"reason_for_visit,omitempty"`
	DurationMinutes   int               `gorm:"not null;default:30" json:"duration_minutes"`
	ReminderSent      bool              `gorm:"not null;default:false" json:"reminder_sent"`
	ReminderSentAt    *time.Time        `json:"reminder_sent_at,omitempty"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     *User            `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      *Doctor          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	LiveSession *LiveAppointment `gorm:"foreignKey:AppointmentID" json:"live_session,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment builds a freshly booked appointment in Pending/Scheduled state
func NewAppointment(patientID, doctorID uuid.UUID, consultationType ConsultationType, date time.Time, clock string) *Appointment {
	return &Appointment{
		PatientID:        patientID,
		DoctorID:         doctorID,
		ConsultationType: consultationType,
		ConsultationDate: date,
		ConsultationTime: clock,
		ApprovalStatus:   ApprovalPending,
		Status:           AppointmentScheduled,
		DurationMinutes:  DefaultAppointmentDuration,
	}
}

// IsTerminal reports whether the appointment reached Completed or Cancelled
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentCompleted || a.Status == AppointmentCancelled
}

func (a *Appointment) IsApproved() bool {
	return a.ApprovalStatus == ApprovalApproved
}

func (a *Appointment) IsPending() bool {
	return a.ApprovalStatus == ApprovalPending
}

// HasNumber reports whether an appointment number was already assigned
func (a *Appointment) HasNumber() bool {
	return a.AppointmentNumber != nil && strings.TrimSpace(*a.AppointmentNumber) != ""
}

// BlocksSlot reports whether the appointment occupies its doctor timeslot.
// Pending and Approved appointments both stay Scheduled until they end.
func (a *Appointment) BlocksSlot() bool {
	return a.Status == AppointmentScheduled
}

// Approve moves Pending/Scheduled to Approved/Scheduled. A supplied number replaces
// the existing one; without either, approval fails. Tele appointments also need a link.
func (a *Appointment) Approve(number *string, now time.Time) error {
	if a.ApprovalStatus == ApprovalRejected || a.IsTerminal() {
		return apperror.Conflictf("Cannot approve an appointment that is already %s", a.stateLabel())
	}
	if a.ConsultationType == ConsultationTele && a.MeetingLink == nil {
		return ErrMeetingLinkRequired
	}
	if number != nil {
		a.AppointmentNumber = number
	}
	if !a.HasNumber() {
		return ErrAppointmentNumberRequired
	}
	a.ApprovalStatus = ApprovalApproved
	a.ApprovedAt = &now
	return nil
}

// Reject moves Pending/Scheduled to Rejected/Cancelled. Both fields change together.
func (a *Appointment) Reject(now time.Time) error {
	if a.ApprovalStatus != ApprovalPending || a.IsTerminal() {
		return apperror.Conflictf("Cannot reject an appointment that is already %s", a.stateLabel())
	}
	a.ApprovalStatus = ApprovalRejected
	a.Status = AppointmentCancelled
	a.ApprovedAt = &now
	return nil
}

// Cancel is only allowed while Scheduled
func (a *Appointment) Cancel() error {
	if a.Status != AppointmentScheduled {
		return apperror.Conflictf("Cannot cancel an appointment that is already %s", a.Status)
	}
	a.Status = AppointmentCancelled
	return nil
}

// Complete marks an approved, scheduled appointment as done
func (a *Appointment) Complete() error {
	if a.Status != AppointmentScheduled {
		return apperror.Conflictf("Cannot complete an appointment that is already %s", a.Status)
	}
	if !a.IsApproved() {
		return apperror.Conflict("Only approved appointments can be completed")
	}
	a.Status = AppointmentCompleted
	return nil
}

// AppointmentEdit carries the editable scheduling fields; nil means unchanged
type AppointmentEdit struct {
	ConsultationType *ConsultationType
	ConsultationDate *time.Time
	ConsultationTime *string
	Notes            *string
	MeetingLink      *string
}

// ApplyEdit updates scheduling fields on a non-terminal appointment and keeps the
// meeting link consistent with the consultation type.
func (a *Appointment) ApplyEdit(edit AppointmentEdit) error {
	if a.IsTerminal() {
		return apperror.Conflictf("Cannot edit an appointment that is already %s", a.Status)
	}
	if edit.ConsultationType != nil {
		if !edit.ConsultationType.IsValid() {
			return apperror.Validation("Invalid consultation type")
		}
		a.ConsultationType = *edit.ConsultationType
	}
	if edit.ConsultationDate != nil {
		a.ConsultationDate = *edit.ConsultationDate
	}
	if edit.ConsultationTime != nil {
		a.ConsultationTime = *edit.ConsultationTime
	}
	if edit.Notes != nil {
		a.Notes = edit.Notes
	}
	if edit.MeetingLink != nil {
		a.MeetingLink = trimmedOrNil(*edit.MeetingLink)
	}

	if a.ConsultationType == ConsultationF2F {
		a.MeetingLink = nil
		return nil
	}
	if a.MeetingLink == nil {
		return ErrMeetingLinkRequired
	}
	return nil
}

// SlotLabel returns "date at time" as shown in notifications
func (a *Appointment) SlotLabel() string {
	return a.ConsultationDate.Format(DateLayout) + " at " + ShortClock(a.ConsultationTime)
}

func (a *Appointment) stateLabel() string {
	if a.IsTerminal() {
		return string(a.Status)
	}
	return string(a.ApprovalStatus)
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
