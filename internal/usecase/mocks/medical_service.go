package mocks

import (
	"context"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MedicalServiceUsecase struct {
	mock.Mock
}

func (m *MedicalServiceUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateMedicalServiceRequest) (*dto.MedicalServiceResponse, error) {
	args := m.Called(ctx, principal, req)
	return medicalServiceResult(args)
}

func (m *MedicalServiceUsecase) GetAll(ctx context.Context, activeOnly bool, page, limit int) (*dto.MedicalServiceListResponse, error) {
	args := m.Called(ctx, activeOnly, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MedicalServiceListResponse), args.Error(1)
}

func (m *MedicalServiceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalServiceResponse, error) {
	args := m.Called(ctx, id)
	return medicalServiceResult(args)
}

func (m *MedicalServiceUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateMedicalServiceRequest) (*dto.MedicalServiceResponse, error) {
	args := m.Called(ctx, principal, id, req)
	return medicalServiceResult(args)
}

func (m *MedicalServiceUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

func medicalServiceResult(args mock.Arguments) (*dto.MedicalServiceResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MedicalServiceResponse), args.Error(1)
}
