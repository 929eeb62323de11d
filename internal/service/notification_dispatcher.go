package service

import (
	"context"

	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationInput describes one notification to create
type NotificationInput struct {
	Recipient uuid.UUID
	Title     string
	Message   string
	Type      entity.NotificationType
	Priority  entity.NotificationPriority
	RelatedID *string
	File      *string
}

// NotificationDispatcher creates notifications as side effects of other operations.
// Delivery is best-effort: failures are logged and never returned to the caller, so
// calls belong after the triggering transaction has committed.
type NotificationDispatcher interface {
	Notify(ctx context.Context, input NotificationInput) bool
	// NotifyRole sends input to every active user of role and returns how many were created
	NotifyRole(ctx context.Context, role entity.Role, input NotificationInput) int
}

type notificationDispatcher struct {
	db               database.Transactor
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationDispatcher(
	db database.Transactor,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) NotificationDispatcher {
	return &notificationDispatcher{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (d *notificationDispatcher) Notify(ctx context.Context, input NotificationInput) bool {
	priority := input.Priority
	if !priority.IsValid() {
		priority = entity.PriorityMedium
	}

	notification := &entity.Notification{
		UserID:           input.Recipient,
		Title:            input.Title,
		Message:          input.Message,
		NotificationType: input.Type,
		Priority:         priority,
		RelatedID:        input.RelatedID,
		File:             input.File,
	}

	if err := d.notificationRepo.Create(ctx, d.db.Conn(ctx), notification); err != nil {
		d.log.WithFields(logrus.Fields{
			"recipient": input.Recipient,
			"title":     input.Title,
		}).Warnf("Failed to create notification: %+v", err)
		return false
	}
	return true
}

func (d *notificationDispatcher) NotifyRole(ctx context.Context, role entity.Role, input NotificationInput) int {
	users, err := d.userRepo.FindActiveByRole(ctx, d.db.Conn(ctx), role)
	if err != nil {
		d.log.Warnf("Failed to find %s recipients: %+v", role, err)
		return 0
	}

	sent := 0
	for _, user := range users {
		in := input
		in.Recipient = user.ID
		if d.Notify(ctx, in) {
			sent++
		}
	}
	return sent
}

// RelatedID formats an entity id for Notification.RelatedID
func RelatedID(id uuid.UUID) *string {
	s := id.String()
	return &s
}
