package worker

import (
	"context"
	"errors"
	"testing"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase/mocks"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationCleanupJobRun(t *testing.T) {
	t.Run("logs the outcome", func(t *testing.T) {
		log, hook := test.NewNullLogger()
		notifications := new(mocks.NotificationUsecase)
		notifications.On("Cleanup", mock.Anything, 15, false).
			Return(&dto.CleanupResponse{RetentionDays: 15, Matched: 4, Deleted: 4, FilesRemoved: 1}, nil).Once()

		NewNotificationCleanupJob(notifications, 15, log).Run()

		notifications.AssertExpectations(t)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, int64(4), entry.Data["deleted"])
	})

	t.Run("errors are logged, not raised", func(t *testing.T) {
		log, hook := test.NewNullLogger()
		notifications := new(mocks.NotificationUsecase)
		notifications.On("Cleanup", mock.Anything, 7, false).Return(nil, errors.New("db down")).Once()

		NewNotificationCleanupJob(notifications, 7, log).Run()

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})
}

func TestSchedulerRegister(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScheduler(log)
	job := NewNotificationCleanupJob(new(mocks.NotificationUsecase), 15, log)

	require.NoError(t, s.Register("disabled", "", job))
	assert.Equal(t, 0, s.Entries())

	require.NoError(t, s.Register("notification-cleanup", "@daily", job))
	assert.Equal(t, 1, s.Entries())

	assert.Error(t, s.Register("broken", "every now and then", job))

	s.Start()
	s.Stop(context.Background())
}
