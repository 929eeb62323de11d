package mocks

import (
	"context"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type LabResultUsecase struct {
	mock.Mock
}

func (m *LabResultUsecase) Upload(ctx context.Context, principal entity.Principal, req *dto.UploadLabResultRequest, upload storage.Upload) (*dto.LabResultResponse, error) {
	args := m.Called(ctx, principal, req, upload)
	return labResultResult(args)
}

func (m *LabResultUsecase) ListMine(ctx context.Context, principal entity.Principal) ([]dto.LabResultResponse, error) {
	args := m.Called(ctx, principal)
	return labResultsResult(args)
}

func (m *LabResultUsecase) ListForPatient(ctx context.Context, principal entity.Principal, patientID string) ([]dto.LabResultResponse, error) {
	args := m.Called(ctx, principal, patientID)
	return labResultsResult(args)
}

func (m *LabResultUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateLabResultRequest) (*dto.LabResultResponse, error) {
	args := m.Called(ctx, principal, id, req)
	return labResultResult(args)
}

func (m *LabResultUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

func (m *LabResultUsecase) Download(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error) {
	args := m.Called(ctx, principal, id)
	return downloadResult(args)
}

func labResultResult(args mock.Arguments) (*dto.LabResultResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LabResultResponse), args.Error(1)
}

func labResultsResult(args mock.Arguments) ([]dto.LabResultResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.LabResultResponse), args.Error(1)
}
