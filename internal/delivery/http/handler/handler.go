package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"medisafe/internal/delivery/http/middleware"
	"medisafe/internal/domain/entity"
	"medisafe/internal/infrastructure/storage"
	"medisafe/pkg/apperror"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxMultipartMemory bounds the part of a multipart form kept in memory
const maxMultipartMemory = 10 << 20

// writeError maps an error onto the response envelope by its apperror kind.
// Internal errors are logged and reported with fallback only.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	message := apperror.MessageOf(err, fallback)
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		response.BadRequest(w, message)
	case apperror.KindUnauthorized:
		response.Unauthorized(w, message)
	case apperror.KindForbidden:
		response.Forbidden(w, message)
	case apperror.KindNotFound:
		response.NotFound(w, message)
	case apperror.KindConflict:
		response.Conflict(w, message)
	default:
		log.Errorf("%s: %+v", fallback, err)
		response.InternalServerError(w, fallback)
	}
}

// decodeJSON reads and validates a JSON body into req; false means a response was written
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func principal(w http.ResponseWriter, r *http.Request) (entity.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
	}
	return p, ok
}

func queryInt(r *http.Request, name string) int {
	value, _ := strconv.Atoi(r.URL.Query().Get(name))
	return value
}

func queryBool(r *http.Request, name string) bool {
	value, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return value
}

// formFile opens a multipart file field. The caller must call the returned close func.
func formFile(r *http.Request, field string) (storage.Upload, func(), error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return storage.Upload{}, func() {}, apperror.Validation("Invalid multipart form")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return storage.Upload{}, func() {}, apperror.Validationf("%s file is required", field)
	}
	upload := storage.Upload{Name: header.Filename, Size: header.Size, Reader: file}
	return upload, func() { _ = file.Close() }, nil
}

// serveFile streams a stored document as an attachment
func serveFile(w http.ResponseWriter, log *logrus.Logger, download *storage.Download) {
	defer download.File.Close()

	w.Header().Set("Content-Type", download.ContentType)
	if download.Name != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Name))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, download.File); err != nil {
		log.Warnf("Failed to stream file %s: %+v", download.Name, err)
	}
}
