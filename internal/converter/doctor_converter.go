package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

// DoctorToResponse converts a Doctor with its preloaded user
func DoctorToResponse(d *entity.Doctor) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                d.ID,
		UserID:            d.UserID,
		Name:              d.DisplayName(),
		Specialization:    d.Specialization,
		LicenseNumber:     d.LicenseNumber,
		YearsOfExperience: d.YearsOfExperience,
		Availability:      d.Availability,
		ContactInfo:       d.ContactInfo,
	}
	if d.User != nil {
		response.Username = d.User.Username
		response.Email = d.User.Email
		response.IsActive = d.User.IsActive
	}
	return response
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// AvailabilityFromRequest returns nil for an absent map
func AvailabilityFromRequest(availability map[string]string) entity.JSON {
	if availability == nil {
		return nil
	}
	out := entity.JSON{}
	for days, hours := range availability {
		out[days] = hours
	}
	return out
}
