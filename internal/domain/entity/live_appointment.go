package entity

import (
	"fmt"
	"time"

	"medisafe/pkg/apperror"

	"github.com/google/uuid"
)

// SessionStatus is the state of a live consultation session
type SessionStatus string

const (
	SessionWaiting    SessionStatus = "waiting"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// LiveSessionCodePrefix prefixes the human-friendly session code (LAP001)
const LiveSessionCodePrefix = "LAP"

var ErrSessionNotInProgress = apperror.Conflict("Session not in progress")

// LiveAppointment is the real-time clinical capture tied 1:1 to an appointment
type LiveAppointment struct {
	ID                    uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID         uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	Status                SessionStatus `gorm:"type:varchar(20);not null;default:'waiting';index" json:"status"`
	LiveAppointmentNumber *string       `gorm:"type:varchar(20);uniqueIndex" json:"live_appointment_number,omitempty"`
	StartedAt             *time.Time    `json:"started_at,omitempty"`
	CompletedAt           *time.Time    `json:"completed_at,omitempty"`
	SessionDuration       *int          `json:"session_duration,omitempty"`

	// Medical data
	VitalSigns      JSON    `gorm:"type:jsonb" json:"vital_signs,omitempty"`
	Symptoms        *string `gorm:"type:text" json:"symptoms,omitempty"`
	Diagnosis       *string `gorm:"type:text" json:"diagnosis,omitempty"`
	ClinicalNotes   *string `gorm:"type:text" json:"clinical_notes,omitempty"`
	TreatmentPlan   *string `gorm:"type:text" json:"treatment_plan,omitempty"`
	FollowUpNotes   *string `gorm:"type:text" json:"follow_up_notes,omitempty"`
	DoctorNotes     *string `gorm:"type:text" json:"doctor_notes,omitempty"`
	Recommendations *string `gorm:"type:text" json:"recommendations,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment   *Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:LiveAppointmentID" json:"prescriptions,omitempty"`
}

func (LiveAppointment) TableName() string {
	return "live_appointments"
}

// FormatSessionCode renders a sequence value as LAP + zero-padded number (LAP007)
func FormatSessionCode(seq int64) string {
	return fmt.Sprintf("%s%03d", LiveSessionCodePrefix, seq)
}

// NewLiveSession creates a session already in progress
func NewLiveSession(appointmentID uuid.UUID, now time.Time) *LiveAppointment {
	return &LiveAppointment{
		AppointmentID: appointmentID,
		Status:        SessionInProgress,
		StartedAt:     &now,
		VitalSigns:    JSON{},
	}
}

func (l *LiveAppointment) IsInProgress() bool {
	return l.Status == SessionInProgress
}

func (l *LiveAppointment) IsCompleted() bool {
	return l.Status == SessionCompleted
}

// Resume moves a waiting or cancelled session into progress
func (l *LiveAppointment) Resume(now time.Time) error {
	if l.Status != SessionWaiting && l.Status != SessionCancelled {
		return apperror.Conflictf("Cannot start a session that is %s", l.Status)
	}
	l.Status = SessionInProgress
	l.StartedAt = &now
	return nil
}

// Restart reopens the session for editing. Clinical fields are kept.
func (l *LiveAppointment) Restart(now time.Time) {
	l.Status = SessionInProgress
	l.StartedAt = &now
	l.CompletedAt = nil
	l.SessionDuration = nil
}

// Complete closes an in-progress session and records its duration in whole minutes
func (l *LiveAppointment) Complete(now time.Time) error {
	if !l.IsInProgress() {
		return ErrSessionNotInProgress
	}
	l.Status = SessionCompleted
	l.CompletedAt = &now

	duration := 0
	if l.StartedAt != nil {
		duration = int(now.Sub(*l.StartedAt).Seconds()) / 60
	}
	l.SessionDuration = &duration
	return nil
}

// Cancel aborts a waiting or in-progress session
func (l *LiveAppointment) Cancel() error {
	if l.Status != SessionWaiting && l.Status != SessionInProgress {
		return apperror.Conflictf("Cannot cancel a session that is %s", l.Status)
	}
	l.Status = SessionCancelled
	return nil
}

// ClinicalUpdate carries a partial update of the captured clinical data
type ClinicalUpdate struct {
	VitalSigns      map[string]interface{}
	Symptoms        *string
	Diagnosis       *string
	ClinicalNotes   *string
	TreatmentPlan   *string
	FollowUpNotes   *string
	DoctorNotes     *string
	Recommendations *string
}

// ApplyClinicalUpdate merges provided fields; absent fields stay untouched
func (l *LiveAppointment) ApplyClinicalUpdate(update ClinicalUpdate) error {
	if !l.IsInProgress() {
		return ErrSessionNotInProgress
	}
	if update.VitalSigns != nil {
		if l.VitalSigns == nil {
			l.VitalSigns = JSON{}
		}
		for k, v := range update.VitalSigns {
			l.VitalSigns[k] = v
		}
	}
	assignIfSet(&l.Symptoms, update.Symptoms)
	assignIfSet(&l.Diagnosis, update.Diagnosis)
	assignIfSet(&l.ClinicalNotes, update.ClinicalNotes)
	assignIfSet(&l.TreatmentPlan, update.TreatmentPlan)
	assignIfSet(&l.FollowUpNotes, update.FollowUpNotes)
	assignIfSet(&l.DoctorNotes, update.DoctorNotes)
	assignIfSet(&l.Recommendations, update.Recommendations)
	return nil
}

func assignIfSet(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
