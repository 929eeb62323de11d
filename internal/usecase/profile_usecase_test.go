package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository/mocks"
	"medisafe/internal/infrastructure/database/dbtest"
	"medisafe/internal/infrastructure/storage"
	"medisafe/internal/service"
	servicemocks "medisafe/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	tx          *dbtest.Transactor
	profileRepo *mocks.UserProfileRepository
	notifier    *servicemocks.NotificationDispatcher
	files       *storage.FileStorage
	usecase     *profileUsecase
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{
		tx:          &dbtest.Transactor{},
		profileRepo: &mocks.UserProfileRepository{},
		notifier:    &servicemocks.NotificationDispatcher{},
		files:       storage.NewMemoryStorage(),
	}
	audit := (&servicemocks.AuditService{}).Permissive()
	f.usecase = NewProfileUsecase(f.tx, newTestLogger(), f.profileRepo, f.notifier, audit, f.files).(*profileUsecase)
	f.usecase.now = fixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	return f
}

func photoUpload() storage.Upload {
	content := "\x89PNG\r\n\x1a\n"
	return storage.Upload{Name: "me.png", Size: int64(len(content)), Reader: strings.NewReader(content)}
}

func TestUpdateProfileNotifiesOwner(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()
	profile := &entity.UserProfile{ID: uuid.New(), UserID: userID, FirstName: "Juan", LastName: "Cruz"}
	consent := true

	f.profileRepo.On("FindByUserID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, profile).Return(nil).Once()

	var sent service.NotificationInput
	f.notifier.On("Notify", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(service.NotificationInput) }).
		Return(true).Once()

	resp, err := f.usecase.Update(context.Background(), patientPrincipal(userID), &dto.UpdateProfileRequest{
		FirstName:          strPtr(" Juana "),
		DataPrivacyConsent: &consent,
	})

	require.NoError(t, err)
	assert.Equal(t, "Juana", resp.FirstName)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), *profile.ConsentDate)
	assert.Equal(t, 1, f.tx.Commits)

	assert.Equal(t, userID, sent.Recipient)
	assert.Equal(t, "Profile Updated", sent.Title)
	assert.Equal(t, "Your profile information has been updated successfully.", sent.Message)
	assert.Equal(t, entity.NotificationAccount, sent.Type)
	assert.Equal(t, entity.PriorityLow, sent.Priority)
	f.notifier.AssertExpectations(t)
}

func TestUpdateProfileSurvivesNotificationFailure(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()
	profile := &entity.UserProfile{ID: uuid.New(), UserID: userID, FirstName: "Juan", LastName: "Cruz"}

	f.profileRepo.On("FindByUserID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, profile).Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(false).Once()

	resp, err := f.usecase.Update(context.Background(), patientPrincipal(userID), &dto.UpdateProfileRequest{
		LastName: strPtr("Santos"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Santos", resp.LastName)
	f.notifier.AssertExpectations(t)
}

func TestUpdateProfileDoesNotNotifyWhenSaveFails(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()
	profile := &entity.UserProfile{ID: uuid.New(), UserID: userID}

	f.profileRepo.On("FindByUserID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, profile).Return(errors.New("db down")).Once()

	_, err := f.usecase.Update(context.Background(), patientPrincipal(userID), &dto.UpdateProfileRequest{
		LastName: strPtr("Santos"),
	})

	require.Error(t, err)
	assert.Equal(t, 1, f.tx.Rollbacks)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestUploadPhotoReplacesPreviousAndNotifies(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()
	old, err := f.files.Write(profilePhotoDir, "old.png", []byte("\x89PNG old"))
	require.NoError(t, err)
	profile := &entity.UserProfile{ID: uuid.New(), UserID: userID, PhotoPath: &old.Path}

	f.profileRepo.On("FindByUserID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, profile).Return(nil).Once()

	var sent service.NotificationInput
	f.notifier.On("Notify", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(service.NotificationInput) }).
		Return(true).Once()

	_, err = f.usecase.UploadPhoto(context.Background(), patientPrincipal(userID), photoUpload())

	require.NoError(t, err)
	require.NotNil(t, profile.PhotoPath)
	assert.True(t, f.files.Exists(*profile.PhotoPath))
	assert.False(t, f.files.Exists(old.Path))

	assert.Equal(t, userID, sent.Recipient)
	assert.Equal(t, "Profile Photo Updated", sent.Title)
	assert.Equal(t, entity.NotificationAccount, sent.Type)
	assert.Equal(t, entity.PriorityLow, sent.Priority)
	f.notifier.AssertExpectations(t)
}

func TestUploadPhotoSurvivesNotificationFailure(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()

	f.profileRepo.On("FindByUserID", mock.Anything, mock.Anything, userID).Return(nil, nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.UserProfile")).Return(nil).Twice()
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(false).Once()

	resp, err := f.usecase.UploadPhoto(context.Background(), patientPrincipal(userID), photoUpload())

	require.NoError(t, err)
	require.NotNil(t, resp)
	f.notifier.AssertExpectations(t)
}

func TestUploadPhotoRemovesFileWhenSaveFails(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()
	profile := &entity.UserProfile{ID: uuid.New(), UserID: userID}

	f.profileRepo.On("FindByUserID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, profile).Return(errors.New("db down")).Once()

	_, err := f.usecase.UploadPhoto(context.Background(), patientPrincipal(userID), photoUpload())

	require.Error(t, err)
	require.NotNil(t, profile.PhotoPath)
	assert.False(t, f.files.Exists(*profile.PhotoPath))
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
