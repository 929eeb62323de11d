package handler

import (
	"net/http"

	"medisafe/internal/usecase"
	"medisafe/pkg/response"

	"github.com/sirupsen/logrus"
)

type ActivityHandler struct {
	activityUsecase usecase.ActivityUsecase
	log             *logrus.Logger
}

func NewActivityHandler(activityUsecase usecase.ActivityUsecase, log *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUsecase: activityUsecase,
		log:             log,
	}
}

func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	events, err := h.activityUsecase.Recent(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get recent activity")
		return
	}

	response.Success(w, http.StatusOK, "Recent activity retrieved successfully", events)
}

func (h *ActivityHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.activityUsecase.Clear(r.Context()); err != nil {
		writeError(w, h.log, err, "Failed to clear activity")
		return
	}

	response.Success(w, http.StatusOK, "Activity cleared successfully", nil)
}
