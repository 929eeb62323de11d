package usecase

import (
	"context"
	"errors"
	"testing"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository/mocks"
	"medisafe/internal/infrastructure/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuditLogUsecase(repo *mocks.AuditLogRepository) AuditLogUsecase {
	return NewAuditLogUsecase(&dbtest.Transactor{}, newTestLogger(), repo)
}

func TestGetAllAuditLogsClampsPaging(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	repo.On("FindAll", mock.Anything, mock.Anything, entity.AuditLogFilter{}, maxAuditLogPageSize, maxAuditLogPageSize).
		Return([]entity.AuditLog{{ID: 7, Action: entity.AuditActionUserLogin, ActorName: "root"}}, int64(201), nil).Once()

	result, err := newAuditLogUsecase(repo).GetAllAuditLogs(context.Background(), &dto.AuditLogFilterRequest{Page: 2, Limit: 5000})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, maxAuditLogPageSize, result.Limit)
	assert.EqualValues(t, 201, result.Total)
	require.Len(t, result.Logs, 1)
	assert.Equal(t, "root", result.Logs[0].ActorName)
	repo.AssertExpectations(t)
}

func TestGetAllAuditLogsFilters(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	userID := uuid.New()
	filter := entity.AuditLogFilter{ActionPrefix: "prescription.", UserID: &userID}
	repo.On("FindAll", mock.Anything, mock.Anything, filter, defaultAuditLogPageSize, 0).
		Return([]entity.AuditLog{}, int64(0), nil).Once()

	result, err := newAuditLogUsecase(repo).GetAllAuditLogs(context.Background(), &dto.AuditLogFilterRequest{
		Action: "prescription.",
		UserID: userID.String(),
	})

	require.NoError(t, err)
	assert.Empty(t, result.Logs)
	assert.Equal(t, 1, result.Page)
	repo.AssertExpectations(t)
}

func TestGetAllAuditLogsRejectsBadUserID(t *testing.T) {
	repo := &mocks.AuditLogRepository{}

	_, err := newAuditLogUsecase(repo).GetAllAuditLogs(context.Background(), &dto.AuditLogFilterRequest{UserID: "nope"})

	assert.ErrorIs(t, err, ErrInvalidID)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAuditLog(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	repo.On("FindByID", mock.Anything, mock.Anything, int64(1)).Return(&entity.AuditLog{ID: 1, Action: entity.AuditActionUserLogout}, nil)
	repo.On("FindByID", mock.Anything, mock.Anything, int64(2)).Return(nil, nil)
	repo.On("FindByID", mock.Anything, mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))
	uc := newAuditLogUsecase(repo)

	entry, err := uc.GetAuditLog(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "system", entry.ActorName)

	_, err = uc.GetAuditLog(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)

	_, err = uc.GetAuditLog(context.Background(), 3)
	assert.EqualError(t, err, "connection reset")
}
