package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

// systemActor names entries written without a principal
const systemActor = "system"

func AuditLogToResponse(entry *entity.AuditLog) *dto.AuditLogResponse {
	if entry == nil {
		return nil
	}

	actor := entry.ActorName
	if actor == "" && entry.User != nil {
		actor = entry.User.Username
	}
	if actor == "" && entry.UserID == nil {
		actor = systemActor
	}

	return &dto.AuditLogResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		ActorName: actor,
		Action:    entry.Action,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt,
	}
}

func AuditLogsToResponses(entries []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(entries))
	for i := range entries {
		responses[i] = *AuditLogToResponse(&entries[i])
	}
	return responses
}
