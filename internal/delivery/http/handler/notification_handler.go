package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
		log:                 log,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationUsecase.List(r.Context(), p, queryInt(r, "limit"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	count, err := h.notificationUsecase.UnreadCount(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to count notifications")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", count)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), p, id); err != nil {
		writeError(w, h.log, err, "Failed to mark notification as read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.notificationUsecase.MarkAllRead(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to mark notifications as read")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as read", result)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), p, id); err != nil {
		writeError(w, h.log, err, "Failed to delete notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", nil)
}

func (h *NotificationHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "notification")
	if !ok {
		return
	}

	download, err := h.notificationUsecase.DownloadFile(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to download attachment")
		return
	}

	serveFile(w, h.log, download)
}

func (h *NotificationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	notification, err := h.notificationUsecase.SendMessage(r.Context(), p, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", notification)
}

func (h *NotificationHandler) ListPasswordResets(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resets, err := h.notificationUsecase.ListPasswordResets(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to get password reset requests")
		return
	}

	response.Success(w, http.StatusOK, "Password reset requests retrieved successfully", resets)
}
