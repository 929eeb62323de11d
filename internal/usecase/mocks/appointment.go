package mocks

import (
	"context"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AppointmentUsecase struct {
	mock.Mock
}

func (m *AppointmentUsecase) Book(ctx context.Context, principal entity.Principal, req *dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookAppointmentResponse), args.Error(1)
}

func (m *AppointmentUsecase) Approve(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.ApproveAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, principal, id, req)
	return appointmentResult(args)
}

func (m *AppointmentUsecase) Reject(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, principal, id)
	return appointmentResult(args)
}

func (m *AppointmentUsecase) Save(ctx context.Context, principal entity.Principal, req *dto.SaveAppointmentRequest) (*dto.SaveAppointmentResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SaveAppointmentResponse), args.Error(1)
}

func (m *AppointmentUsecase) Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, principal, id)
	return appointmentResult(args)
}

func (m *AppointmentUsecase) ListMine(ctx context.Context, principal entity.Principal) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

func (m *AppointmentUsecase) ListAll(ctx context.Context, req *dto.AppointmentFilterRequest) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

func (m *AppointmentUsecase) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, principal, id)
	return appointmentResult(args)
}

func appointmentResult(args mock.Arguments) (*dto.AppointmentResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}
