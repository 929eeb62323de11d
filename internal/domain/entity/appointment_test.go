package entity

import (
	"testing"
	"time"

	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppointment() *Appointment {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return NewAppointment(uuid.New(), uuid.New(), ConsultationF2F, date, "14:00")
}

func strPtr(s string) *string { return &s }

func TestNewAppointmentDefaults(t *testing.T) {
	a := newTestAppointment()

	assert.Equal(t, ApprovalPending, a.ApprovalStatus)
	assert.Equal(t, AppointmentScheduled, a.Status)
	assert.Equal(t, DefaultAppointmentDuration, a.DurationMinutes)
	assert.False(t, a.ReminderSent)
	assert.True(t, a.BlocksSlot())
	assert.Equal(t, "2025-03-01 at 14:00", a.SlotLabel())
}

func TestAppointmentApprove(t *testing.T) {
	now := time.Now()

	t.Run("requires a number", func(t *testing.T) {
		a := newTestAppointment()
		err := a.Approve(nil, now)
		assert.ErrorIs(t, err, ErrAppointmentNumberRequired)
		assert.Equal(t, ApprovalPending, a.ApprovalStatus)
	})

	t.Run("supplied number", func(t *testing.T) {
		a := newTestAppointment()
		require.NoError(t, a.Approve(strPtr("A-1001"), now))
		assert.Equal(t, ApprovalApproved, a.ApprovalStatus)
		assert.Equal(t, "A-1001", *a.AppointmentNumber)
		assert.Equal(t, now, *a.ApprovedAt)
		assert.Equal(t, AppointmentScheduled, a.Status)
	})

	t.Run("existing number", func(t *testing.T) {
		a := newTestAppointment()
		a.AppointmentNumber = strPtr("A-7")
		require.NoError(t, a.Approve(nil, now))
		assert.Equal(t, "A-7", *a.AppointmentNumber)
	})

	t.Run("blank existing number", func(t *testing.T) {
		a := newTestAppointment()
		a.AppointmentNumber = strPtr("   ")
		assert.ErrorIs(t, a.Approve(nil, now), ErrAppointmentNumberRequired)
	})

	t.Run("tele without meeting link", func(t *testing.T) {
		a := newTestAppointment()
		a.ConsultationType = ConsultationTele
		err := a.Approve(strPtr("A-1"), now)
		assert.ErrorIs(t, err, ErrMeetingLinkRequired)
		assert.Equal(t, ApprovalPending, a.ApprovalStatus)
		assert.Nil(t, a.ApprovedAt)
		assert.Nil(t, a.AppointmentNumber)
	})

	t.Run("tele with meeting link", func(t *testing.T) {
		a := newTestAppointment()
		a.ConsultationType = ConsultationTele
		a.MeetingLink = strPtr("https://meet.example/abc")
		require.NoError(t, a.Approve(strPtr("A-1"), now))
		assert.Equal(t, ApprovalApproved, a.ApprovalStatus)
	})

	t.Run("rejected cannot be approved", func(t *testing.T) {
		a := newTestAppointment()
		require.NoError(t, a.Reject(now))
		err := a.Approve(strPtr("A-1"), now)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}

func TestAppointmentReject(t *testing.T) {
	now := time.Now()

	t.Run("pending is rejected and cancelled together", func(t *testing.T) {
		a := newTestAppointment()
		require.NoError(t, a.Reject(now))
		assert.Equal(t, ApprovalRejected, a.ApprovalStatus)
		assert.Equal(t, AppointmentCancelled, a.Status)
		assert.False(t, a.BlocksSlot())
	})

	t.Run("approved cannot flip back", func(t *testing.T) {
		a := newTestAppointment()
		require.NoError(t, a.Approve(strPtr("A-1001"), now))

		err := a.Reject(now)
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
		assert.Equal(t, ApprovalApproved, a.ApprovalStatus)
		assert.Equal(t, AppointmentScheduled, a.Status)
	})
}

func TestAppointmentCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  AppointmentStatus
		wantErr bool
	}{
		{"scheduled", AppointmentScheduled, false},
		{"completed", AppointmentCompleted, true},
		{"cancelled", AppointmentCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAppointment()
			a.Status = tt.status
			err := a.Cancel()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.Is(err, apperror.KindConflict))
				assert.Contains(t, err.Error(), string(tt.status))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, AppointmentCancelled, a.Status)
		})
	}
}

func TestAppointmentComplete(t *testing.T) {
	a := newTestAppointment()
	assert.Error(t, a.Complete(), "pending appointment cannot complete")

	require.NoError(t, a.Approve(strPtr("A-1"), time.Now()))
	require.NoError(t, a.Complete())
	assert.Equal(t, AppointmentCompleted, a.Status)
	assert.True(t, a.IsTerminal())
	assert.Error(t, a.Cancel())
}

func TestAppointmentApplyEdit(t *testing.T) {
	tele := ConsultationTele
	f2f := ConsultationF2F

	t.Run("tele requires meeting link", func(t *testing.T) {
		a := newTestAppointment()
		err := a.ApplyEdit(AppointmentEdit{ConsultationType: &tele})
		assert.ErrorIs(t, err, ErrMeetingLinkRequired)
	})

	t.Run("tele with link", func(t *testing.T) {
		a := newTestAppointment()
		err := a.ApplyEdit(AppointmentEdit{ConsultationType: &tele, MeetingLink: strPtr(" https://meet.example/abc ")})
		require.NoError(t, err)
		assert.Equal(t, "https://meet.example/abc", *a.MeetingLink)
	})

	t.Run("f2f clears link", func(t *testing.T) {
		a := newTestAppointment()
		a.ConsultationType = ConsultationTele
		a.MeetingLink = strPtr("https://meet.example/abc")
		require.NoError(t, a.ApplyEdit(AppointmentEdit{ConsultationType: &f2f}))
		assert.Nil(t, a.MeetingLink)
	})

	t.Run("terminal appointments are frozen", func(t *testing.T) {
		a := newTestAppointment()
		a.Status = AppointmentCancelled
		err := a.ApplyEdit(AppointmentEdit{Notes: strPtr("x")})
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}
