package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveSessionCompleteDuration(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"under a minute", 59 * time.Second, 0},
		{"exact minutes", 25 * time.Minute, 25},
		{"truncates seconds", 25*time.Minute + 59*time.Second, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLiveSession(uuid.New(), start)
			require.NoError(t, s.Complete(start.Add(tt.elapsed)))
			assert.Equal(t, SessionCompleted, s.Status)
			require.NotNil(t, s.SessionDuration)
			assert.Equal(t, tt.want, *s.SessionDuration)
		})
	}
}

func TestLiveSessionRestartClearsCompletion(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	s := NewLiveSession(uuid.New(), start)
	diagnosis := "flu"
	require.NoError(t, s.ApplyClinicalUpdate(ClinicalUpdate{Diagnosis: &diagnosis}))
	require.NoError(t, s.Complete(time.Now()))

	restartAt := time.Now()
	s.Restart(restartAt)

	assert.Equal(t, SessionInProgress, s.Status)
	assert.Nil(t, s.CompletedAt)
	assert.Nil(t, s.SessionDuration)
	assert.Equal(t, restartAt, *s.StartedAt)
	assert.Equal(t, "flu", *s.Diagnosis)
}

func TestLiveSessionTransitions(t *testing.T) {
	now := time.Now()

	s := &LiveAppointment{Status: SessionWaiting}
	require.NoError(t, s.Resume(now))
	assert.Equal(t, SessionInProgress, s.Status)

	assert.Error(t, s.Resume(now), "in-progress session cannot be resumed")

	require.NoError(t, s.Cancel())
	assert.Equal(t, SessionCancelled, s.Status)
	assert.ErrorIs(t, s.Complete(now), ErrSessionNotInProgress)

	require.NoError(t, s.Resume(now))
	require.NoError(t, s.Complete(now))
	assert.Error(t, s.Cancel(), "completed session cannot be cancelled")
}

func TestLiveSessionClinicalUpdateMerges(t *testing.T) {
	s := NewLiveSession(uuid.New(), time.Now())
	symptoms := "cough"
	require.NoError(t, s.ApplyClinicalUpdate(ClinicalUpdate{
		VitalSigns: map[string]interface{}{"bp": "120/80", "hr": 72},
		Symptoms:   &symptoms,
	}))

	plan := "rest"
	require.NoError(t, s.ApplyClinicalUpdate(ClinicalUpdate{
		VitalSigns:    map[string]interface{}{"hr": 80},
		TreatmentPlan: &plan,
	}))

	assert.Equal(t, "120/80", s.VitalSigns["bp"])
	assert.Equal(t, 80, s.VitalSigns["hr"])
	assert.Equal(t, "cough", *s.Symptoms)
	assert.Equal(t, "rest", *s.TreatmentPlan)
	assert.Nil(t, s.Diagnosis)

	require.NoError(t, s.Complete(time.Now()))
	assert.ErrorIs(t, s.ApplyClinicalUpdate(ClinicalUpdate{Symptoms: &symptoms}), ErrSessionNotInProgress)
}

func TestFormatSessionCode(t *testing.T) {
	assert.Equal(t, "LAP001", FormatSessionCode(1))
	assert.Equal(t, "LAP042", FormatSessionCode(42))
	assert.Equal(t, "LAP1234", FormatSessionCode(1234))
}
