package usecase

import (
	"context"
	"time"

	"medisafe/internal/converter"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/infrastructure/storage"
	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound     = apperror.NotFound("Notification not found")
	ErrNotificationFileMissing  = apperror.NotFound("Notification has no attachment")
	ErrInvalidRetention         = apperror.Validation("Retention days must be a positive number")
	ErrMessageRecipientNotFound = apperror.NotFound("Recipient not found")
)

const (
	adminMessagePrefix       = "From MediSafe Admin:\n\n"
	defaultNotificationLimit = 50
	cleanupFileWorkers       = 8
)

type NotificationUsecase interface {
	List(ctx context.Context, principal entity.Principal, limit int) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, principal entity.Principal) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	MarkAllRead(ctx context.Context, principal entity.Principal) (*dto.MarkAllReadResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	DownloadFile(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error)
	SendMessage(ctx context.Context, principal entity.Principal, req *dto.SendMessageRequest) (*dto.NotificationResponse, error)
	ListPasswordResets(ctx context.Context, principal entity.Principal) ([]dto.NotificationResponse, error)
	// Cleanup deletes notifications older than days together with their files
	Cleanup(ctx context.Context, days int, dryRun bool) (*dto.CleanupResponse, error)
}

type notificationUsecase struct {
	db               database.Transactor
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	files            *storage.FileStorage
	now              func() time.Time
}

func NewNotificationUsecase(
	db database.Transactor,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	files *storage.FileStorage,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		files:            files,
		now:              time.Now,
	}
}

func (u *notificationUsecase) List(ctx context.Context, principal entity.Principal, limit int) ([]dto.NotificationResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return []dto.NotificationResponse{}, nil
	}
	if limit < 1 {
		limit = defaultNotificationLimit
	}

	notifications, err := u.notificationRepo.FindByUserID(ctx, u.db.Conn(ctx), userID, limit)
	if err != nil {
		u.log.Warnf("Failed to find notifications of user %s: %+v", userID, err)
		return nil, err
	}
	return converter.NotificationsToResponses(notifications), nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, principal entity.Principal) (*dto.UnreadCountResponse, error) {
	userID, ok := principal.UserID()
	if !ok {
		return &dto.UnreadCountResponse{}, nil
	}
	count, err := u.notificationRepo.CountUnread(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications of user %s: %+v", userID, err)
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	conn := u.db.Conn(ctx)
	if _, err := u.findOwned(ctx, conn, principal, id); err != nil {
		return err
	}
	if err := u.notificationRepo.MarkRead(ctx, conn, id); err != nil {
		u.log.Warnf("Failed to mark notification %s as read: %+v", id, err)
		return err
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, principal entity.Principal) (*dto.MarkAllReadResponse, error) {
	userID, err := actingUser(principal)
	if err != nil {
		return nil, err
	}
	updated, err := u.notificationRepo.MarkAllRead(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to mark notifications of user %s as read: %+v", userID, err)
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	conn := u.db.Conn(ctx)
	notification, err := u.findOwned(ctx, conn, principal, id)
	if err != nil {
		return err
	}
	if err := u.notificationRepo.Delete(ctx, conn, id); err != nil {
		u.log.Warnf("Failed to delete notification %s: %+v", id, err)
		return err
	}
	if notification.File != nil {
		if err := u.files.Remove(*notification.File); err != nil {
			u.log.Warnf("Failed to remove notification file %s: %+v", *notification.File, err)
		}
	}
	return nil
}

// DownloadFile serves an attachment to its recipient or to an admin
func (u *notificationUsecase) DownloadFile(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error) {
	notification, err := u.notificationRepo.FindByID(ctx, u.db.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find notification %s: %+v", id, err)
		return nil, err
	}
	if notification == nil || !principal.IsAdmin() && !principal.Is(notification.UserID) {
		return nil, ErrNotificationNotFound
	}
	if notification.File == nil {
		return nil, ErrNotificationFileMissing
	}
	return u.files.Fetch(*notification.File, "")
}

// SendMessage delivers an admin-authored message to one user
func (u *notificationUsecase) SendMessage(ctx context.Context, principal entity.Principal, req *dto.SendMessageRequest) (*dto.NotificationResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	recipientID, err := parseID(req.UserID)
	if err != nil {
		return nil, ErrMessageRecipientNotFound
	}

	conn := u.db.Conn(ctx)
	recipient, err := u.userRepo.FindByID(ctx, conn, recipientID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", recipientID, err)
		return nil, err
	}
	if recipient == nil {
		return nil, ErrMessageRecipientNotFound
	}

	priority := entity.NotificationPriority(req.Priority)
	if !priority.IsValid() {
		priority = entity.PriorityMedium
	}

	notification := &entity.Notification{
		UserID:           recipient.ID,
		Title:            req.Title,
		Message:          adminMessagePrefix + req.Message,
		NotificationType: entity.NotificationSystem,
		Priority:         priority,
	}
	if err := u.notificationRepo.Create(ctx, conn, notification); err != nil {
		u.log.Warnf("Failed to send message to user %s: %+v", recipient.ID, err)
		return nil, err
	}

	notification.User = recipient
	return converter.NotificationToResponse(notification), nil
}

func (u *notificationUsecase) ListPasswordResets(ctx context.Context, principal entity.Principal) ([]dto.NotificationResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	notifications, err := u.notificationRepo.FindByType(ctx, u.db.Conn(ctx), entity.NotificationPasswordReset)
	if err != nil {
		u.log.Warnf("Failed to find password reset notifications: %+v", err)
		return nil, err
	}

	// Each admin receives a copy of the same request; show the caller's own copies only
	if userID, ok := principal.UserID(); ok {
		own := notifications[:0]
		for _, n := range notifications {
			if n.UserID == userID {
				own = append(own, n)
			}
		}
		notifications = own
	}
	return converter.NotificationsToResponses(notifications), nil
}

// Cleanup removes notifications created before now minus days.
// Rows are deleted in one transaction; attached files are removed afterwards in parallel.
func (u *notificationUsecase) Cleanup(ctx context.Context, days int, dryRun bool) (*dto.CleanupResponse, error) {
	if days < 1 {
		return nil, ErrInvalidRetention
	}
	cutoff := u.now().AddDate(0, 0, -days)
	result := &dto.CleanupResponse{RetentionDays: days, Cutoff: cutoff, DryRun: dryRun}

	expired, err := u.notificationRepo.FindOlderThan(ctx, u.db.Conn(ctx), cutoff)
	if err != nil {
		u.log.Warnf("Failed to find notifications older than %s: %+v", cutoff, err)
		return nil, err
	}
	result.Matched = len(expired)
	if dryRun || len(expired) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(expired))
	var files []string
	for i, n := range expired {
		ids[i] = n.ID
		if n.File != nil {
			files = append(files, *n.File)
		}
	}

	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		deleted, err := u.notificationRepo.DeleteByIDs(ctx, tx, ids)
		if err != nil {
			u.log.Warnf("Failed to delete expired notifications: %+v", err)
			return err
		}
		result.Deleted = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.FilesRemoved = removeStoredFiles(u.files, u.log, files)

	u.log.WithFields(logrus.Fields{
		"retention_days": days,
		"deleted":        result.Deleted,
		"files_removed":  result.FilesRemoved,
	}).Info("Notification cleanup finished")
	return result, nil
}

func (u *notificationUsecase) findOwned(ctx context.Context, db *gorm.DB, principal entity.Principal, id uuid.UUID) (*entity.Notification, error) {
	notification, err := u.notificationRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find notification %s: %+v", id, err)
		return nil, err
	}
	if notification == nil || !principal.Is(notification.UserID) {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}
