package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:                   p.ID,
		LiveAppointmentID:    p.LiveAppointmentID,
		DoctorID:             p.DoctorID,
		PrescriptionNumber:   p.PrescriptionNumber,
		Medicines:            MedicinesToResponses(p.Medicines),
		Instructions:         p.Instructions,
		FollowUpInstructions: p.FollowUpInstructions,
		Signed:               p.DoctorSignature != nil,
		SignatureDate:        p.SignatureDate,
		HasFile:              p.PrescriptionFile != nil,
		Status:               string(p.Status),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.FollowUpDate != nil {
		date := p.FollowUpDate.Format(entity.DateLayout)
		response.FollowUpDate = &date
	}
	if p.Doctor != nil {
		response.DoctorName = p.Doctor.DisplayName()
	}
	return response
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

func MedicinesToResponses(medicines entity.Medicines) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i, m := range medicines {
		responses[i] = dto.MedicineResponse(m)
	}
	return responses
}

// MedicinesFromRequest returns nil for an absent list so edits leave medicines untouched
func MedicinesFromRequest(requests []dto.MedicineRequest) entity.Medicines {
	if requests == nil {
		return nil
	}
	medicines := make(entity.Medicines, len(requests))
	for i, r := range requests {
		medicines[i] = entity.Medicine(r)
	}
	return medicines
}
