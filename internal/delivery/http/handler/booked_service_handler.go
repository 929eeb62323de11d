package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type BookedServiceHandler struct {
	bookedServiceUsecase usecase.BookedServiceUsecase
	validator            *validator.CustomValidator
	log                  *logrus.Logger
}

func NewBookedServiceHandler(bookedServiceUsecase usecase.BookedServiceUsecase, validator *validator.CustomValidator, log *logrus.Logger) *BookedServiceHandler {
	return &BookedServiceHandler{
		bookedServiceUsecase: bookedServiceUsecase,
		validator:            validator,
		log:                  log,
	}
}

// Book handles a patient booking a medical service
// @Summary Book a medical service
// @Tags Booked Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookServiceRequest true "Book Service Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /booked-services [post]
func (h *BookedServiceHandler) Book(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.BookServiceRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	booking, err := h.bookedServiceUsecase.Book(r.Context(), p, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to book service")
		return
	}

	response.Success(w, http.StatusCreated, "Service booked successfully", booking)
}

func (h *BookedServiceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookedServiceUsecase.ListMine(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to get booked services")
		return
	}

	response.Success(w, http.StatusOK, "Booked services retrieved successfully", bookings)
}

func (h *BookedServiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "booking")
	if !ok {
		return
	}

	booking, err := h.bookedServiceUsecase.Cancel(r.Context(), p, id)
	if err != nil {
		writeError(w, h.log, err, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

func (h *BookedServiceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookedServiceUsecase.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get booked services")
		return
	}

	response.Success(w, http.StatusOK, "Booked services retrieved successfully", bookings)
}

func (h *BookedServiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "booking")
	if !ok {
		return
	}

	var req dto.UpdateBookedServiceStatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	booking, err := h.bookedServiceUsecase.UpdateStatus(r.Context(), p, id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update booking status")
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookedServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "booking")
	if !ok {
		return
	}

	if err := h.bookedServiceUsecase.Delete(r.Context(), p, id); err != nil {
		writeError(w, h.log, err, "Failed to delete booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}
