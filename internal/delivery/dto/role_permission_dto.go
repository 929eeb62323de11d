package dto

// Request DTOs

type UpdateRolePermissionRequest struct {
	Role      string `json:"role" validate:"required"`
	IsEnabled *bool  `json:"is_enabled" validate:"required"`
}

// Response DTOs

// RolePermissionsResponse maps each managed role to whether it is enabled
type RolePermissionsResponse map[string]bool
