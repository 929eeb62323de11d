package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

func MedicalServiceToResponse(s *entity.MedicalService) *dto.MedicalServiceResponse {
	if s == nil {
		return nil
	}

	return &dto.MedicalServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func MedicalServicesToResponses(services []entity.MedicalService) []dto.MedicalServiceResponse {
	responses := make([]dto.MedicalServiceResponse, len(services))
	for i := range services {
		responses[i] = *MedicalServiceToResponse(&services[i])
	}
	return responses
}

func BookedServiceToResponse(b *entity.BookedService) *dto.BookedServiceResponse {
	if b == nil {
		return nil
	}

	response := &dto.BookedServiceResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		Price:       b.Price,
		BookingDate: b.BookingDate.Format(entity.DateLayout),
		BookingTime: entity.ShortClock(b.BookingTime),
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
	if b.User != nil {
		response.PatientName = b.User.FullName()
	}
	return response
}

func BookedServicesToResponses(bookings []entity.BookedService) []dto.BookedServiceResponse {
	responses := make([]dto.BookedServiceResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookedServiceToResponse(&bookings[i])
	}
	return responses
}
