package service

import (
	"context"
	"errors"
	"testing"

	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository/mocks"
	"medisafe/internal/infrastructure/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotifyCreatesNotification(t *testing.T) {
	notificationRepo := &mocks.NotificationRepository{}
	d := NewNotificationDispatcher(&dbtest.Transactor{}, newTestLogger(), notificationRepo, &mocks.UserRepository{})
	recipient := uuid.New()

	notificationRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == recipient &&
			n.Title == "Appointment Approved" &&
			n.NotificationType == entity.NotificationAppointment &&
			n.Priority == entity.PriorityMedium &&
			!n.IsRead
	})).Return(nil).Once()

	ok := d.Notify(context.Background(), NotificationInput{
		Recipient: recipient,
		Title:     "Appointment Approved",
		Message:   "Your appointment has been approved.",
		Type:      entity.NotificationAppointment,
		Priority:  entity.PriorityMedium,
	})

	assert.True(t, ok)
	notificationRepo.AssertExpectations(t)
}

func TestNotifySwallowsFailures(t *testing.T) {
	notificationRepo := &mocks.NotificationRepository{}
	d := NewNotificationDispatcher(&dbtest.Transactor{}, newTestLogger(), notificationRepo, &mocks.UserRepository{})
	notificationRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	var ok bool
	assert.NotPanics(t, func() {
		ok = d.Notify(context.Background(), NotificationInput{Recipient: uuid.New(), Title: "x", Type: entity.NotificationSystem})
	})
	assert.False(t, ok)
}

func TestNotifyDefaultsInvalidPriority(t *testing.T) {
	notificationRepo := &mocks.NotificationRepository{}
	d := NewNotificationDispatcher(&dbtest.Transactor{}, newTestLogger(), notificationRepo, &mocks.UserRepository{})
	notificationRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.Priority == entity.PriorityMedium
	})).Return(nil).Once()

	d.Notify(context.Background(), NotificationInput{Recipient: uuid.New(), Title: "x", Type: entity.NotificationSystem})

	notificationRepo.AssertExpectations(t)
}

func TestNotifyRoleFansOutAndCountsSuccesses(t *testing.T) {
	notificationRepo := &mocks.NotificationRepository{}
	userRepo := &mocks.UserRepository{}
	d := NewNotificationDispatcher(&dbtest.Transactor{}, newTestLogger(), notificationRepo, userRepo)

	admins := []entity.User{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	userRepo.On("FindActiveByRole", mock.Anything, mock.Anything, entity.RoleAdmin).Return(admins, nil).Once()
	notificationRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == admins[1].ID
	})).Return(errors.New("boom")).Once()
	notificationRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	sent := d.NotifyRole(context.Background(), entity.RoleAdmin, NotificationInput{Title: "New Service Booking", Type: entity.NotificationSystem})

	assert.Equal(t, 2, sent)
	notificationRepo.AssertExpectations(t)
}
