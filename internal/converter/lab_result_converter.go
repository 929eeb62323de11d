package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

func LabResultToResponse(r *entity.LabResult) *dto.LabResultResponse {
	if r == nil {
		return nil
	}

	response := &dto.LabResultResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		LabType:      r.LabType,
		FileName:     r.FileName,
		FileType:     r.FileType,
		UploadedByID: r.UploadedByID,
		Notes:        r.Notes,
		UploadDate:   r.UploadDate,
	}
	if r.UploadedBy != nil {
		response.UploadedByName = r.UploadedBy.FullName()
	}
	return response
}

func LabResultsToResponses(results []entity.LabResult) []dto.LabResultResponse {
	responses := make([]dto.LabResultResponse, len(results))
	for i := range results {
		responses[i] = *LabResultToResponse(&results[i])
	}
	return responses
}
