package handler

import (
	"net/http"
	"strconv"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
	log             *logrus.Logger
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
		log:             log,
	}
}

// GetAuditLog handles GET /admin/audit-logs/{id}; ids are sequential integers
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	entry, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", entry)
}

// GetAllAuditLogs handles GET /admin/audit-logs?page=&limit=&action=&user_id=
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.AuditLogFilterRequest{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Action: query.Get("action"),
		UserID: query.Get("user_id"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully",
		result.Logs, response.NewMeta(result.Page, result.Limit, result.Total))
}
