package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator, log *logrus.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
		log:                 log,
	}
}

func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	var req dto.CreatePrescriptionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.prescriptionUsecase.Create(r.Context(), p, appointmentID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create prescription")
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", result)
}

func (h *PrescriptionHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.ListBySession(r.Context(), p, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) GetMyPrescriptions(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.ListForPatient(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.Get(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}

func (h *PrescriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	var req dto.UpdatePrescriptionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Update(r.Context(), p, id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription updated successfully", prescription)
}

func (h *PrescriptionHandler) Sign(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	var req dto.SignPrescriptionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Sign(r.Context(), p, id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to sign prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription signed successfully", prescription)
}

func (h *PrescriptionHandler) Print(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.MarkPrinted(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to mark prescription as printed")
		return
	}

	response.Success(w, http.StatusOK, "Prescription marked as printed", prescription)
}

func (h *PrescriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.Cancel(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to cancel prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription cancelled successfully", prescription)
}

func (h *PrescriptionHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	upload, closeFile, err := formFile(r, "prescription_file")
	if err != nil {
		writeError(w, h.log, err, "Failed to upload prescription file")
		return
	}
	defer closeFile()

	prescription, err := h.prescriptionUsecase.AttachFile(r.Context(), p, id, upload)
	if err != nil {
		writeError(w, h.log, err, "Failed to upload prescription file")
		return
	}

	response.Success(w, http.StatusOK, "Prescription file uploaded successfully", prescription)
}

func (h *PrescriptionHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	download, err := h.prescriptionUsecase.DownloadFile(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to download prescription file")
		return
	}

	serveFile(w, h.log, download)
}

func (h *PrescriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "prescription")
	if !ok {
		return
	}

	if err := h.prescriptionUsecase.Delete(r.Context(), p, id); err != nil {
		writeError(w, h.log, err, "Failed to delete prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription deleted successfully", nil)
}
