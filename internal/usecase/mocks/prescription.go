package mocks

import (
	"context"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PrescriptionUsecase struct {
	mock.Mock
}

func (m *PrescriptionUsecase) Create(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	args := m.Called(ctx, principal, appointmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreatePrescriptionResponse), args.Error(1)
}

func (m *PrescriptionUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, id, req)
	return prescriptionResult(args)
}

func (m *PrescriptionUsecase) Sign(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.SignPrescriptionRequest) (*dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, id, req)
	return prescriptionResult(args)
}

func (m *PrescriptionUsecase) MarkPrinted(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, id)
	return prescriptionResult(args)
}

func (m *PrescriptionUsecase) Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, id)
	return prescriptionResult(args)
}

func (m *PrescriptionUsecase) AttachFile(ctx context.Context, principal entity.Principal, id uuid.UUID, upload storage.Upload) (*dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, id, upload)
	return prescriptionResult(args)
}

func (m *PrescriptionUsecase) DownloadFile(ctx context.Context, principal entity.Principal, id uuid.UUID) (*storage.Download, error) {
	args := m.Called(ctx, principal, id)
	return downloadResult(args)
}

func (m *PrescriptionUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

func (m *PrescriptionUsecase) ListBySession(ctx context.Context, principal entity.Principal, appointmentID uuid.UUID) ([]dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, appointmentID)
	return prescriptionsResult(args)
}

func (m *PrescriptionUsecase) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal, id)
	return prescriptionResult(args)
}

func (m *PrescriptionUsecase) ListForPatient(ctx context.Context, principal entity.Principal) ([]dto.PrescriptionResponse, error) {
	args := m.Called(ctx, principal)
	return prescriptionsResult(args)
}

func prescriptionResult(args mock.Arguments) (*dto.PrescriptionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PrescriptionResponse), args.Error(1)
}

func prescriptionsResult(args mock.Arguments) ([]dto.PrescriptionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PrescriptionResponse), args.Error(1)
}

func downloadResult(args mock.Arguments) (*storage.Download, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Download), args.Error(1)
}
