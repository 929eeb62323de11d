package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

func LiveSessionToResponse(session *entity.LiveAppointment) *dto.LiveSessionResponse {
	if session == nil {
		return nil
	}

	vitals := map[string]interface{}(session.VitalSigns)
	if vitals == nil {
		vitals = map[string]interface{}{}
	}

	return &dto.LiveSessionResponse{
		ID:                    session.ID,
		AppointmentID:         session.AppointmentID,
		LiveAppointmentNumber: session.LiveAppointmentNumber,
		Status:                string(session.Status),
		StartedAt:             session.StartedAt,
		CompletedAt:           session.CompletedAt,
		SessionDuration:       session.SessionDuration,
		VitalSigns:            vitals,
		Symptoms:              session.Symptoms,
		Diagnosis:             session.Diagnosis,
		ClinicalNotes:         session.ClinicalNotes,
		TreatmentPlan:         session.TreatmentPlan,
		FollowUpNotes:         session.FollowUpNotes,
		DoctorNotes:           session.DoctorNotes,
		Recommendations:       session.Recommendations,
		UpdatedAt:             session.UpdatedAt,
	}
}

// ClinicalUpdateFromRequest maps the partial update DTO onto the domain update
func ClinicalUpdateFromRequest(req *dto.UpdateSessionRequest) entity.ClinicalUpdate {
	return entity.ClinicalUpdate{
		VitalSigns:      req.VitalSigns,
		Symptoms:        req.Symptoms,
		Diagnosis:       req.Diagnosis,
		ClinicalNotes:   req.ClinicalNotes,
		TreatmentPlan:   req.TreatmentPlan,
		FollowUpNotes:   req.FollowUpNotes,
		DoctorNotes:     req.DoctorNotes,
		Recommendations: req.Recommendations,
	}
}
