package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

func NotificationToResponse(n *entity.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}

	response := &dto.NotificationResponse{
		ID:               n.ID,
		UserID:           n.UserID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: string(n.NotificationType),
		Priority:         string(n.Priority),
		IsRead:           n.IsRead,
		RelatedID:        n.RelatedID,
		HasFile:          n.File != nil,
		CreatedAt:        n.CreatedAt,
	}
	if n.User != nil {
		response.RecipientName = n.User.FullName()
	}
	return response
}

func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *NotificationToResponse(&notifications[i])
	}
	return responses
}
