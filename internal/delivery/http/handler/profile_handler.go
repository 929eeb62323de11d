package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
		log:            log,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	profile, err := h.profileUsecase.Get(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	profile, err := h.profileUsecase.Update(r.Context(), p, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *ProfileHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	upload, closeFile, err := formFile(r, "photo")
	if err != nil {
		writeError(w, h.log, err, "Failed to upload photo")
		return
	}
	defer closeFile()

	profile, err := h.profileUsecase.UploadPhoto(r.Context(), p, upload)
	if err != nil {
		writeError(w, h.log, err, "Failed to upload photo")
		return
	}

	response.Success(w, http.StatusOK, "Profile photo updated successfully", profile)
}

func (h *ProfileHandler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	download, err := h.profileUsecase.DownloadPhoto(r.Context(), p)
	if err != nil {
		writeError(w, h.log, err, "Failed to get photo")
		return
	}

	serveFile(w, h.log, download)
}
