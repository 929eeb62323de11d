package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

// LiveSessionHandler serves the consultation session of an appointment.
// Every route is keyed by the appointment id.
type LiveSessionHandler struct {
	sessionUsecase usecase.LiveSessionUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewLiveSessionHandler(sessionUsecase usecase.LiveSessionUsecase, validator *validator.CustomValidator, log *logrus.Logger) *LiveSessionHandler {
	return &LiveSessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
		log:            log,
	}
}

func (h *LiveSessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	result, err := h.sessionUsecase.Start(r.Context(), p, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to start session")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *LiveSessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	result, err := h.sessionUsecase.Restart(r.Context(), p, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to restart session")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *LiveSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	session, err := h.sessionUsecase.Get(r.Context(), p, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get session")
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (h *LiveSessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.sessionUsecase.UpdateData(r.Context(), p, appointmentID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update session")
		return
	}

	response.Success(w, http.StatusOK, "Session updated successfully", result)
}

func (h *LiveSessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	result, err := h.sessionUsecase.Complete(r.Context(), p, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to complete session")
		return
	}

	response.Success(w, http.StatusOK, "Session completed successfully", result)
}

func (h *LiveSessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	session, err := h.sessionUsecase.Cancel(r.Context(), p, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to cancel session")
		return
	}

	response.Success(w, http.StatusOK, "Session cancelled successfully", session)
}
