package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one row of the audit trail. UserID is nil for the super
// administrator, which has no users row.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ActorName string     `gorm:"type:varchar(100)" json:"actor_name,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogFilter narrows the admin audit trail listing
type AuditLogFilter struct {
	// ActionPrefix matches an action family such as "prescription."
	ActionPrefix string
	UserID       *uuid.UUID
}

// Audit actions
const (
	AuditActionUserLogin            = "user.login"
	AuditActionUserLogout           = "user.logout"
	AuditActionUserRegister         = "user.register"
	AuditActionAppointmentCreate    = "appointment.create"
	AuditActionAppointmentApprove   = "appointment.approve"
	AuditActionAppointmentReject    = "appointment.reject"
	AuditActionAppointmentUpdate    = "appointment.update"
	AuditActionAppointmentCancel    = "appointment.cancel"
	AuditActionSessionStart         = "live_session.start"
	AuditActionSessionComplete      = "live_session.complete"
	AuditActionPrescriptionCreate   = "prescription.create"
	AuditActionPrescriptionSign     = "prescription.sign"
	AuditActionPrescriptionDelete   = "prescription.delete"
	AuditActionLabResultUpload      = "lab_result.upload"
	AuditActionLabResultUpdate      = "lab_result.update"
	AuditActionLabResultDelete      = "lab_result.delete"
	AuditActionProfileUpdate        = "profile.update"
	AuditActionDoctorCreate         = "doctor.create"
	AuditActionDoctorUpdate         = "doctor.update"
	AuditActionDoctorDelete         = "doctor.delete"
	AuditActionRolePermissionUpdate = "role_permission.update"
	AuditActionServiceCreate        = "medical_service.create"
	AuditActionServiceUpdate        = "medical_service.update"
	AuditActionServiceDelete        = "medical_service.delete"
	AuditActionServiceBook          = "booked_service.create"
	AuditActionServiceBookingUpdate = "booked_service.update"
	AuditActionServiceBookingDelete = "booked_service.delete"
)
