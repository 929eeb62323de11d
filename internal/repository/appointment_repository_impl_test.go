package repository

import (
	"testing"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func slotConflictSQL(t *testing.T, doctorID, excludeID uuid.UUID) string {
	t.Helper()
	repo := &appointmentRepository{}
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return newDryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repo.slotConflictQuery(tx, doctorID, date, "14:00", excludeID).First(&entity.Appointment{})
	})
}

func TestSlotConflictQueryOnlyMatchesScheduledRows(t *testing.T) {
	doctorID := uuid.New()

	sql := slotConflictSQL(t, doctorID, uuid.Nil)

	assert.Contains(t, sql, "doctor_id = '"+doctorID.String()+"'")
	assert.Contains(t, sql, "consultation_date = '2025-03-10'")
	assert.Contains(t, sql, "consultation_time = '14:00'")
	assert.Contains(t, sql, "status = 'Scheduled'")
	assert.NotContains(t, sql, "approval_status")
	assert.NotContains(t, sql, "id <>")
	assert.Contains(t, sql, "LIMIT 1")
}

func TestSlotConflictQueryExcludesEditedAppointment(t *testing.T) {
	editing := uuid.New()

	sql := slotConflictSQL(t, uuid.New(), editing)

	assert.Contains(t, sql, "id <> '"+editing.String()+"'")
}

// The query filters on status alone, so a row holds the slot exactly when
// its status is Scheduled, whatever its approval status.
func TestSlotHoldingRows(t *testing.T) {
	tests := []struct {
		name     string
		approval entity.ApprovalStatus
		status   entity.AppointmentStatus
		holds    bool
	}{
		{"pending scheduled", entity.ApprovalPending, entity.AppointmentScheduled, true},
		{"approved scheduled", entity.ApprovalApproved, entity.AppointmentScheduled, true},
		{"approved then cancelled", entity.ApprovalApproved, entity.AppointmentCancelled, false},
		{"rejected", entity.ApprovalRejected, entity.AppointmentCancelled, false},
		{"approved and completed", entity.ApprovalApproved, entity.AppointmentCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := entity.Appointment{ApprovalStatus: tt.approval, Status: tt.status}
			assert.Equal(t, tt.holds, row.BlocksSlot())
			assert.Equal(t, tt.holds, row.Status == entity.AppointmentScheduled)
		})
	}
}
