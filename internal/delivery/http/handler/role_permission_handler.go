package handler

import (
	"net/http"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/usecase"
	"medisafe/pkg/response"
	"medisafe/pkg/validator"

	"github.com/sirupsen/logrus"
)

type RolePermissionHandler struct {
	rolePermissionUsecase usecase.RolePermissionUsecase
	validator             *validator.CustomValidator
	log                   *logrus.Logger
}

func NewRolePermissionHandler(rolePermissionUsecase usecase.RolePermissionUsecase, validator *validator.CustomValidator, log *logrus.Logger) *RolePermissionHandler {
	return &RolePermissionHandler{
		rolePermissionUsecase: rolePermissionUsecase,
		validator:             validator,
		log:                   log,
	}
}

func (h *RolePermissionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.rolePermissionUsecase.GetAll(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get role permissions")
		return
	}

	response.Success(w, http.StatusOK, "Role permissions retrieved successfully", permissions)
}

func (h *RolePermissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRolePermissionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	permissions, err := h.rolePermissionUsecase.Update(r.Context(), p, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update role permission")
		return
	}

	response.Success(w, http.StatusOK, "Role permission updated successfully", permissions)
}
