package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

func ActivityEventsToResponses(events []entity.ActivityEvent) []dto.ActivityEventResponse {
	responses := make([]dto.ActivityEventResponse, len(events))
	for i, e := range events {
		responses[i] = dto.ActivityEventResponse(e)
	}
	return responses
}
