package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"medisafe/pkg/apperror"

	"github.com/google/uuid"
)

// PrescriptionStatus is the document state of a prescription
type PrescriptionStatus string

const (
	PrescriptionDraft     PrescriptionStatus = "draft"
	PrescriptionSigned    PrescriptionStatus = "signed"
	PrescriptionPrinted   PrescriptionStatus = "printed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

// PrescriptionNumberPrefix prefixes every prescription number (RX3E6ACC9F)
const PrescriptionNumberPrefix = "RX"

var ErrPrescriptionLocked = apperror.Conflict("Prescription is signed and can no longer be edited")

// Medicine is one line of a prescription
type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// Medicines is an ordered medicine list stored as JSONB
type Medicines []Medicine

func (m Medicines) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Medicines) Scan(value interface{}) error {
	if value == nil {
		*m = Medicines{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal medicines value: %v", value)
	}
	return json.Unmarshal(bytes, m)
}

// Prescription is a medical document produced from a completed live session
type Prescription struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	LiveAppointmentID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"live_appointment_id"`
	DoctorID             *uuid.UUID         `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	PrescriptionNumber   string             `gorm:"type:varchar(50);uniqueIndex;not null" json:"prescription_number"`
	Medicines            Medicines          `gorm:"type:jsonb;not null" json:"medicines"`
	Instructions         *string            `gorm:"type:text" json:"instructions,omitempty"`
	FollowUpDate         *time.Time         `gorm:"type:date" json:"follow_up_date,omitempty"`
	FollowUpInstructions *string            `gorm:"type:text" json:"follow_up_instructions,omitempty"`
	DoctorSignature      *string            `gorm:"type:text" json:"-"`
	SignatureDate        *time.Time         `json:"signature_date,omitempty"`
	PrescriptionFile     *string            `gorm:"type:text" json:"prescription_file,omitempty"`
	Status               PrescriptionStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CreatedAt            time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	LiveAppointment *LiveAppointment `gorm:"foreignKey:LiveAppointmentID" json:"live_appointment,omitempty"`
	Doctor          *Doctor          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// NewPrescriptionNumber returns RX followed by the first 8 hex chars of a random UUID, uppercased
func NewPrescriptionNumber() string {
	return PrescriptionNumberPrefix + strings.ToUpper(uuid.New().String()[:8])
}

// IsEditable reports whether medicines and instructions may still change
func (p *Prescription) IsEditable() bool {
	return p.Status == PrescriptionDraft
}

// PrescriptionEdit carries the editable content of a draft; nil means unchanged
type PrescriptionEdit struct {
	Medicines            Medicines
	Instructions         *string
	FollowUpDate         *time.Time
	FollowUpInstructions *string
}

func (p *Prescription) ApplyEdit(edit PrescriptionEdit) error {
	if !p.IsEditable() {
		return ErrPrescriptionLocked
	}
	if edit.Medicines != nil {
		p.Medicines = edit.Medicines
	}
	if edit.Instructions != nil {
		p.Instructions = edit.Instructions
	}
	if edit.FollowUpDate != nil {
		p.FollowUpDate = edit.FollowUpDate
	}
	if edit.FollowUpInstructions != nil {
		p.FollowUpInstructions = edit.FollowUpInstructions
	}
	return nil
}

// Sign freezes the prescription content
func (p *Prescription) Sign(signature string, now time.Time) error {
	if strings.TrimSpace(signature) == "" {
		return apperror.Validation("Signature is required")
	}
	if p.Status != PrescriptionDraft {
		return apperror.Conflictf("Cannot sign a prescription that is %s", p.Status)
	}
	p.DoctorSignature = &signature
	p.SignatureDate = &now
	p.Status = PrescriptionSigned
	return nil
}

func (p *Prescription) MarkPrinted() error {
	if p.Status != PrescriptionSigned {
		return apperror.Conflictf("Cannot print a prescription that is %s", p.Status)
	}
	p.Status = PrescriptionPrinted
	return nil
}

func (p *Prescription) Cancel() error {
	if p.Status != PrescriptionDraft && p.Status != PrescriptionSigned {
		return apperror.Conflictf("Cannot cancel a prescription that is %s", p.Status)
	}
	p.Status = PrescriptionCancelled
	return nil
}
