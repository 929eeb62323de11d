package usecase

import (
	"context"
	"fmt"
	"strings"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/infrastructure/storage"
	"medisafe/internal/service"
	"medisafe/pkg/apperror"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

var ErrIdentifierRequired = apperror.Validation("Username or email is required")

// PasswordResetAcknowledgement is returned whether or not an account matched
const PasswordResetAcknowledgement = "If an account matches, an administrator has been notified to assist with your password reset."

const (
	passwordResetDir     = "password_resets"
	passwordResetWorkers = 4
)

type PasswordResetUsecase interface {
	RequestReset(ctx context.Context, identifier string, photo storage.Upload) (*dto.MessageResponse, error)
}

type passwordResetUsecase struct {
	db       database.Transactor
	log      *logrus.Logger
	userRepo repository.UserRepository
	notifier service.NotificationDispatcher
	files    *storage.FileStorage
}

func NewPasswordResetUsecase(
	db database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	notifier service.NotificationDispatcher,
	files *storage.FileStorage,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		notifier: notifier,
		files:    files,
	}
}

// RequestReset asks every active admin to verify the requester's ID photo.
// The response never reveals whether the identifier matched an account.
func (u *passwordResetUsecase) RequestReset(ctx context.Context, identifier string, photo storage.Upload) (*dto.MessageResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrIdentifierRequired
	}
	if photo.Reader == nil {
		return nil, apperror.Validation("ID photo is required")
	}
	data, err := u.files.Read(photo, storage.PhotoPolicy)
	if err != nil {
		return nil, err
	}

	ack := &dto.MessageResponse{Message: PasswordResetAcknowledgement}

	user, err := u.findUser(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		u.log.Infof("Password reset requested for unknown identifier")
		return ack, nil
	}

	admins, err := u.userRepo.FindActiveByRole(ctx, u.db.Conn(ctx), entity.RoleAdmin)
	if err != nil {
		u.log.Warnf("Failed to find admins for password reset of user %s: %+v", user.ID, err)
		return ack, nil
	}

	name := user.FullName()
	input := service.NotificationInput{
		Title: "Password Reset Request - " + name,
		Message: fmt.Sprintf("%s (username: %s, email: %s) requested a password reset. Verify the attached ID photo before assisting.",
			name, user.Username, user.Email),
		Type:      entity.NotificationPasswordReset,
		Priority:  entity.PriorityHigh,
		RelatedID: service.RelatedID(user.ID),
	}

	// Every admin gets an independent copy so deleting one notification keeps the others intact
	p := pool.New().WithMaxGoroutines(passwordResetWorkers)
	for _, admin := range admins {
		admin := admin
		p.Go(func() {
			stored, err := u.files.Write(passwordResetDir, photo.Name, data)
			if err != nil {
				u.log.Warnf("Failed to store password reset photo for admin %s: %+v", admin.ID, err)
				return
			}
			in := input
			in.Recipient = admin.ID
			in.File = &stored.Path
			if !u.notifier.Notify(ctx, in) {
				if err := u.files.Remove(stored.Path); err != nil {
					u.log.Warnf("Failed to remove password reset photo %s: %+v", stored.Path, err)
				}
			}
		})
	}
	p.Wait()

	u.log.Infof("Password reset requested: user=%s, admins=%d", user.ID, len(admins))
	return ack, nil
}

// findUser looks the identifier up as a username first, then as an email
func (u *passwordResetUsecase) findUser(ctx context.Context, identifier string) (*entity.User, error) {
	conn := u.db.Conn(ctx)
	user, err := u.userRepo.FindByUsername(ctx, conn, identifier)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user, err = u.userRepo.FindByEmail(ctx, conn, identifier)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	return user, nil
}
