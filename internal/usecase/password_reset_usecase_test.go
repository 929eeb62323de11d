package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

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

type passwordResetFixture struct {
	userRepo *mocks.UserRepository
	notifier *servicemocks.NotificationDispatcher
	files    *storage.FileStorage
	usecase  PasswordResetUsecase
}

func newPasswordResetFixture() *passwordResetFixture {
	f := &passwordResetFixture{
		userRepo: &mocks.UserRepository{},
		notifier: &servicemocks.NotificationDispatcher{},
		files:    storage.NewMemoryStorage(),
	}
	f.usecase = NewPasswordResetUsecase(&dbtest.Transactor{}, newTestLogger(), f.userRepo, f.notifier, f.files)
	return f
}

func idPhoto() storage.Upload {
	return storage.Upload{Name: "id.png", Size: 4, Reader: strings.NewReader("\x89PNG")}
}

func TestRequestResetSendsOneCopyPerAdmin(t *testing.T) {
	f := newPasswordResetFixture()
	user := &entity.User{ID: uuid.New(), Username: "juan", Email: "juan@example.com",
		Profile: &entity.UserProfile{FirstName: "Juan", LastName: "Dela Cruz"}}
	admins := []entity.User{{ID: uuid.New()}, {ID: uuid.New()}}

	f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(user, nil).Once()
	f.userRepo.On("FindActiveByRole", mock.Anything, mock.Anything, entity.RoleAdmin).Return(admins, nil).Once()

	var mu sync.Mutex
	files := map[uuid.UUID]string{}
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(in service.NotificationInput) bool {
		return in.Title == "Password Reset Request - Juan Dela Cruz" &&
			in.Type == entity.NotificationPasswordReset &&
			in.Priority == entity.PriorityHigh &&
			in.File != nil
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(service.NotificationInput)
		mu.Lock()
		files[in.Recipient] = *in.File
		mu.Unlock()
	}).Return(true).Twice()

	resp, err := f.usecase.RequestReset(context.Background(), " juan ", idPhoto())

	require.NoError(t, err)
	assert.Equal(t, PasswordResetAcknowledgement, resp.Message)
	require.Len(t, files, 2)
	assert.NotEqual(t, files[admins[0].ID], files[admins[1].ID])
	for _, path := range files {
		assert.True(t, f.files.Exists(path))
	}
}

func TestRequestResetFallsBackToEmail(t *testing.T) {
	f := newPasswordResetFixture()
	user := &entity.User{ID: uuid.New(), Username: "juan", Email: "juan@example.com"}
	f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan@example.com").Return(nil, nil).Once()
	f.userRepo.On("FindByEmail", mock.Anything, mock.Anything, "juan@example.com").Return(user, nil).Once()
	f.userRepo.On("FindActiveByRole", mock.Anything, mock.Anything, entity.RoleAdmin).Return([]entity.User{}, nil).Once()

	_, err := f.usecase.RequestReset(context.Background(), "juan@example.com", idPhoto())

	require.NoError(t, err)
	f.userRepo.AssertExpectations(t)
}

func TestRequestResetUnknownIdentifierLooksTheSame(t *testing.T) {
	f := newPasswordResetFixture()
	f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "ghost").Return(nil, nil).Once()
	f.userRepo.On("FindByEmail", mock.Anything, mock.Anything, "ghost").Return(nil, nil).Once()

	resp, err := f.usecase.RequestReset(context.Background(), "ghost", idPhoto())

	require.NoError(t, err)
	assert.Equal(t, PasswordResetAcknowledgement, resp.Message)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestRequestResetRemovesPhotoWhenNotifyFails(t *testing.T) {
	f := newPasswordResetFixture()
	user := &entity.User{ID: uuid.New(), Username: "juan"}
	f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(user, nil).Once()
	f.userRepo.On("FindActiveByRole", mock.Anything, mock.Anything, entity.RoleAdmin).Return([]entity.User{{ID: uuid.New()}}, nil).Once()

	var stored string
	f.notifier.On("Notify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = *args.Get(1).(service.NotificationInput).File
	}).Return(false).Once()

	_, err := f.usecase.RequestReset(context.Background(), "juan", idPhoto())

	require.NoError(t, err)
	require.NotEmpty(t, stored)
	assert.False(t, f.files.Exists(stored))
}

func TestRequestResetValidatesInput(t *testing.T) {
	f := newPasswordResetFixture()

	_, err := f.usecase.RequestReset(context.Background(), "  ", idPhoto())
	assert.ErrorIs(t, err, ErrIdentifierRequired)

	_, err = f.usecase.RequestReset(context.Background(), "juan", storage.Upload{Name: "id.pdf", Size: 4, Reader: strings.NewReader("%PDF")})
	assert.Error(t, err)
	f.userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything, mock.Anything)
}
