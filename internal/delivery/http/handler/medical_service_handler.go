package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type MedicalServiceHandler struct {
	medicalServiceUsecase usecase.MedicalServiceUsecase
	validator             *validator.CustomValidator
	log                   *logrus.Logger
}

func NewMedicalServiceHandler(medicalServiceUsecase usecase.MedicalServiceUsecase, validator *validator.CustomValidator, log *logrus.Logger) *MedicalServiceHandler {
	return &MedicalServiceHandler{
		medicalServiceUsecase: medicalServiceUsecase,
		validator:             validator,
		log:                   log,
	}
}

// Create handles service catalog creation
// @Summary Create a medical service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMedicalServiceRequest true "Create Medical Service Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/services [post]
func (h *MedicalServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.CreateMedicalServiceRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	service, err := h.medicalServiceUsecase.Create(r.Context(), p, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create medical service")
		return
	}

	response.Success(w, http.StatusCreated, "Medical service created successfully", service)
}

// GetAll lists the catalog. Patients only see active services; admins may pass ?active=false.
// @Summary Get medical services
// @Tags Services
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /services [get]
func (h *MedicalServiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page")
	limit := queryInt(r, "limit")
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	activeOnly := true
	if p.IsAdmin() && r.URL.Query().Get("active") != "" {
		activeOnly = queryBool(r, "active")
	}

	result, err := h.medicalServiceUsecase.GetAll(r.Context(), activeOnly, page, limit)
	if err != nil {
		writeError(w, h.log, err, "Failed to get medical services")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medical services retrieved successfully", result.Services, response.NewMeta(page, limit, result.Total))
}

func (h *MedicalServiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "medical service")
	if !ok {
		return
	}

	service, err := h.medicalServiceUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service retrieved successfully", service)
}

func (h *MedicalServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "medical service")
	if !ok {
		return
	}

	var req dto.UpdateMedicalServiceRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	service, err := h.medicalServiceUsecase.Update(r.Context(), p, id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service updated successfully", service)
}

func (h *MedicalServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "medical service")
	if !ok {
		return
	}

	if err := h.medicalServiceUsecase.Delete(r.Context(), p, id); err != nil {
		writeError(w, h.log, err, "Failed to delete medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service deleted successfully", nil)
}
