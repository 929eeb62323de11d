package worker

import (
	"context"
	"time"

	"medisafe/internal/usecase"

	"github.com/sirupsen/logrus"
)

const cleanupTimeout = 5 * time.Minute

// NotificationCleanupJob deletes notifications past the retention period
type NotificationCleanupJob struct {
	notifications usecase.NotificationUsecase
	retentionDays int
	log           *logrus.Logger
}

func NewNotificationCleanupJob(notifications usecase.NotificationUsecase, retentionDays int, log *logrus.Logger) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notifications: notifications,
		retentionDays: retentionDays,
		log:           log,
	}
}

func (j *NotificationCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	result, err := j.notifications.Cleanup(ctx, j.retentionDays, false)
	if err != nil {
		j.log.Errorf("Failed to clean up notifications: %+v", err)
		return
	}

	j.log.WithFields(logrus.Fields{
		"retention_days": result.RetentionDays,
		"deleted":        result.Deleted,
		"files_removed":  result.FilesRemoved,
	}).Info("Notification cleanup finished")
}
