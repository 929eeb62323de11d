package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type LabResultHandler struct {
	labResultUsecase usecase.LabResultUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
}

func NewLabResultHandler(labResultUsecase usecase.LabResultUsecase, validator *validator.CustomValidator, log *logrus.Logger) *LabResultHandler {
	return &LabResultHandler{
		labResultUsecase: labResultUsecase,
		validator:        validator,
		log:              log,
	}
}

// Upload takes a multipart form with patient_id, lab_type, notes and result_file
func (h *LabResultHandler) Upload(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	upload, closeFile, err := formFile(r, "result_file")
	if err != nil {
		writeError(w, h.log, err, "Failed to upload lab result")
		return
	}
	defer closeFile()

	req := dto.UploadLabResultRequest{
		PatientID: r.FormValue("patient_id"),
		LabType:   r.FormValue("lab_type"),
	}
	if notes := r.FormValue("notes"); notes != "" {
		req.Notes = &notes
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.labResultUsecase.Upload(r.Context(), p, &req, upload)
	if err != nil {
		writeError(w, h.log, err, "Failed to upload lab result")
		return
	}

	response.Success(w, http.StatusCreated, "Lab result uploaded successfully", result)
}

// List returns the patient's own results, or a patient's results for staff via ?patient_id=
func (h *LabResultHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var (
		results []dto.LabResultResponse
		err     error
	)
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		results, err = h.labResultUsecase.ListForPatient(r.Context(), p, patientID)
	} else {
		results, err = h.labResultUsecase.ListMine(r.Context(), p)
	}
	if err != nil {
		writeError(w, h.log, err, "Failed to get lab results")
		return
	}

	response.Success(w, http.StatusOK, "Lab results retrieved successfully", results)
}

func (h *LabResultHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "lab result")
	if !ok {
		return
	}

	var req dto.UpdateLabResultRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.labResultUsecase.Update(r.Context(), p, id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update lab result")
		return
	}

	response.Success(w, http.StatusOK, "Lab result updated successfully", result)
}

func (h *LabResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "lab result")
	if !ok {
		return
	}

	if err := h.labResultUsecase.Delete(r.Context(), p, id); err != nil {
		writeError(w, h.log, err, "Failed to delete lab result")
		return
	}

	response.Success(w, http.StatusOK, "Lab result deleted successfully", nil)
}

func (h *LabResultHandler) Download(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "lab result")
	if !ok {
		return
	}

	download, err := h.labResultUsecase.Download(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to download lab result")
		return
	}

	serveFile(w, h.log, download)
}
