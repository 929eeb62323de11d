package usecase

import (
	"context"
	"testing"
	"time"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository/mocks"
	"medisafe/internal/infrastructure/database/dbtest"
	"medisafe/internal/service"
	servicemocks "medisafe/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type liveSessionFixture struct {
	tx              *dbtest.Transactor
	appointmentRepo *mocks.AppointmentRepository
	sessionRepo     *mocks.LiveAppointmentRepository
	codes           *servicemocks.CodeAllocator
	notifier        *servicemocks.NotificationDispatcher
	usecase         *liveSessionUsecase
	now             time.Time
}

func newLiveSessionFixture() *liveSessionFixture {
	f := &liveSessionFixture{
		tx:              &dbtest.Transactor{},
		appointmentRepo: &mocks.AppointmentRepository{},
		sessionRepo:     &mocks.LiveAppointmentRepository{},
		codes:           &servicemocks.CodeAllocator{},
		notifier:        &servicemocks.NotificationDispatcher{},
		now:             time.Date(2025, 3, 10, 14, 45, 0, 0, time.UTC),
	}
	audit := (&servicemocks.AuditService{}).Permissive()
	f.usecase = NewLiveSessionUsecase(f.tx, newTestLogger(), f.appointmentRepo, f.sessionRepo, f.codes, f.notifier, audit).(*liveSessionUsecase)
	f.usecase.now = fixedClock(f.now)
	return f
}

func approvedAppointment(doctor *entity.Doctor) *entity.Appointment {
	a := pendingAppointment(uuid.New(), doctor)
	number := "A-1"
	a.AppointmentNumber = &number
	a.ApprovalStatus = entity.ApprovalApproved
	return a
}

func TestStartCreatesSessionWithSequenceCode(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := approvedAppointment(doctor)

	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
	f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(nil, nil).Once()
	f.codes.On("NextSessionCode", mock.Anything, mock.Anything).Return("LAP007", nil).Once()
	f.sessionRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *entity.LiveAppointment) bool {
		return s.AppointmentID == appointment.ID && s.Status == entity.SessionInProgress && *s.LiveAppointmentNumber == "LAP007"
	})).Return(nil).Once()

	resp, err := f.usecase.Start(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, SessionActionStart, resp.Action)
	assert.Equal(t, "LAP007", *resp.LiveAppointmentNumber)
	assert.Equal(t, 1, f.tx.Commits)
	f.sessionRepo.AssertExpectations(t)
}

func TestStartRequiresApproval(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := pendingAppointment(uuid.New(), doctor)
	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()

	_, err := f.usecase.Start(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

	assert.ErrorIs(t, err, ErrAppointmentNotApproved)
	f.codes.AssertNotCalled(t, "NextSessionCode", mock.Anything, mock.Anything)
}

func TestStartIsDoctorOnly(t *testing.T) {
	f := newLiveSessionFixture()
	appointment := approvedAppointment(testDoctor())
	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Start(context.Background(), doctorPrincipal(uuid.New()), appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	_, err = f.usecase.Start(context.Background(), adminPrincipal(), appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestStartReportsExistingSessionState(t *testing.T) {
	doctor := testDoctor()
	cases := []struct {
		status entity.SessionStatus
		action string
	}{
		{entity.SessionInProgress, SessionActionContinue},
		{entity.SessionCompleted, SessionActionRestart},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			f := newLiveSessionFixture()
			appointment := approvedAppointment(doctor)
			session := entity.NewLiveSession(appointment.ID, f.now.Add(-time.Hour))
			session.Status = tc.status
			f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
			f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(session, nil).Once()

			resp, err := f.usecase.Start(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

			require.NoError(t, err)
			assert.Equal(t, tc.action, resp.Action)
			f.sessionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			f.codes.AssertNotCalled(t, "NextSessionCode", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateDataMergesVitalSigns(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := approvedAppointment(doctor)
	session := entity.NewLiveSession(appointment.ID, f.now)
	session.VitalSigns = entity.JSON{"bp": "120/80"}

	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
	f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(session, nil).Once()
	f.sessionRepo.On("Update", mock.Anything, mock.Anything, session).Return(nil).Once()

	_, err := f.usecase.UpdateData(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID, &dto.UpdateSessionRequest{
		VitalSigns: map[string]interface{}{"temp": "37.2"},
		Diagnosis:  strPtr("Common cold"),
	})

	require.NoError(t, err)
	assert.Equal(t, "120/80", session.VitalSigns["bp"])
	assert.Equal(t, "37.2", session.VitalSigns["temp"])
	assert.Equal(t, "Common cold", *session.Diagnosis)
}

func TestCompleteClosesSessionAndAppointmentTogether(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := approvedAppointment(doctor)
	session := entity.NewLiveSession(appointment.ID, f.now.Add(-25*time.Minute))

	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
	f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(session, nil).Once()
	f.sessionRepo.On("Update", mock.Anything, mock.Anything, session).Return(nil).Once()
	f.appointmentRepo.On("Update", mock.Anything, mock.Anything, appointment).Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(in service.NotificationInput) bool {
		return in.Recipient == appointment.PatientID && in.Title == "Appointment Completed"
	})).Return(true).Once()

	resp, err := f.usecase.Complete(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, 25, resp.Duration)
	assert.Equal(t, entity.SessionCompleted, session.Status)
	assert.Equal(t, entity.AppointmentCompleted, appointment.Status)
	assert.Equal(t, 1, f.tx.Commits)
	f.appointmentRepo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCompleteAfterRestartLeavesCompletedAppointmentAlone(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := approvedAppointment(doctor)
	appointment.Status = entity.AppointmentCompleted
	session := entity.NewLiveSession(appointment.ID, f.now.Add(-5*time.Minute))

	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
	f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(session, nil).Once()
	f.sessionRepo.On("Update", mock.Anything, mock.Anything, session).Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(true).Once()

	_, err := f.usecase.Complete(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

	require.NoError(t, err)
	f.appointmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteRequiresSessionInProgress(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := approvedAppointment(doctor)
	session := entity.NewLiveSession(appointment.ID, f.now)
	session.Status = entity.SessionCancelled

	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
	f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(session, nil).Once()

	_, err := f.usecase.Complete(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

	assert.ErrorIs(t, err, entity.ErrSessionNotInProgress)
	assert.Equal(t, 1, f.tx.Rollbacks)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestRestartWithoutSession(t *testing.T) {
	f := newLiveSessionFixture()
	doctor := testDoctor()
	appointment := approvedAppointment(doctor)
	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything, appointment.ID).Return(appointment, nil).Once()
	f.sessionRepo.On("FindByAppointmentID", mock.Anything, mock.Anything, appointment.ID).Return(nil, nil).Once()

	_, err := f.usecase.Restart(context.Background(), doctorPrincipal(doctor.UserID), appointment.ID)

	assert.ErrorIs(t, err, ErrNoSessionToRestart)
}
