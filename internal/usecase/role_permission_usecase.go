package usecase

import (
	"context"
	"strings"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/service"
	"medisafe/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var ErrInvalidRole = apperror.Validation("Invalid role")

type RolePermissionUsecase interface {
	// GetAll reports every managed role; roles without a stored row are enabled
	GetAll(ctx context.Context) (dto.RolePermissionsResponse, error)
	Update(ctx context.Context, principal entity.Principal, req *dto.UpdateRolePermissionRequest) (dto.RolePermissionsResponse, error)
}

type rolePermissionUsecase struct {
	db                 database.Transactor
	log                *logrus.Logger
	rolePermissionRepo repository.RolePermissionRepository
	permissions        service.RolePermissionService
	audit              service.AuditService
}

func NewRolePermissionUsecase(
	db database.Transactor,
	log *logrus.Logger,
	rolePermissionRepo repository.RolePermissionRepository,
	permissions service.RolePermissionService,
	audit service.AuditService,
) RolePermissionUsecase {
	return &rolePermissionUsecase{
		db:                 db,
		log:                log,
		rolePermissionRepo: rolePermissionRepo,
		permissions:        permissions,
		audit:              audit,
	}
}

func (u *rolePermissionUsecase) GetAll(ctx context.Context) (dto.RolePermissionsResponse, error) {
	stored, err := u.rolePermissionRepo.FindAll(ctx, u.db.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to find role permissions: %+v", err)
		return nil, err
	}

	response := dto.RolePermissionsResponse{}
	for _, role := range entity.ManagedRoles {
		response[string(role)] = true
	}
	for _, permission := range stored {
		if permission.Role.IsManaged() {
			response[string(permission.Role)] = permission.IsEnabled
		}
	}
	return response, nil
}

func (u *rolePermissionUsecase) Update(ctx context.Context, principal entity.Principal, req *dto.UpdateRolePermissionRequest) (dto.RolePermissionsResponse, error) {
	role := entity.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.IsManaged() {
		return nil, ErrInvalidRole
	}

	conn := u.db.Conn(ctx)
	previous, err := u.rolePermissionRepo.FindByRole(ctx, conn, role)
	if err != nil {
		u.log.Warnf("Failed to find role permission for %s: %+v", role, err)
		return nil, err
	}
	wasEnabled := previous == nil || previous.IsEnabled

	permission := &entity.RolePermission{Role: role, IsEnabled: *req.IsEnabled}
	if err := u.rolePermissionRepo.Upsert(ctx, conn, permission); err != nil {
		u.log.Warnf("Failed to update role permission for %s: %+v", role, err)
		return nil, err
	}
	u.permissions.Invalidate(ctx, role)

	u.log.Infof("Role permission updated: role=%s, enabled=%t", role, permission.IsEnabled)
	u.audit.LogUpdate(ctx, conn, principal, entity.AuditActionRolePermissionUpdate, "role_permission", string(role),
		map[string]bool{"is_enabled": wasEnabled}, map[string]bool{"is_enabled": permission.IsEnabled})
	return u.GetAll(ctx)
}
