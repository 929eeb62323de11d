package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment with its preloaded relations
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                a.ID,
		AppointmentNumber: a.AppointmentNumber,
		PatientID:         a.PatientID,
		DoctorID:          a.DoctorID,
		ConsultationType:  string(a.ConsultationType),
		ConsultationDate:  a.ConsultationDate.Format(entity.DateLayout),
		ConsultationTime:  entity.ShortClock(a.ConsultationTime),
		ApprovalStatus:    string(a.ApprovalStatus),
		ApprovedAt:        a.ApprovedAt,
		Status:            string(a.Status),
		Notes:             a.Notes,
		MeetingLink:       a.MeetingLink,
		ReasonForVisit:    a.ReasonForVisit,
		DurationMinutes:   a.DurationMinutes,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}

	if a.Patient != nil {
		response.PatientName = a.Patient.FullName()
	}
	if a.Doctor != nil {
		response.DoctorName = a.Doctor.DisplayName()
		response.Specialization = a.Doctor.Specialization
	}
	if a.LiveSession != nil {
		id := a.LiveSession.ID
		response.LiveSessionID = &id
		response.LiveSessionStatus = string(a.LiveSession.Status)
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
