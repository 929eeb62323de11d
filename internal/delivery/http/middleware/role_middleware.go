package middleware

import (
	"net/http"

	"medisafe/internal/domain/entity"
	"medisafe/internal/service"
	"medisafe/pkg/response"

	"github.com/sirupsen/logrus"
)

const forbiddenMessage = "You don't have permission to access this resource"

// require builds a middleware admitting principals for which allow returns true
func require(allow func(entity.Principal) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if !allow(principal) {
				response.Forbidden(w, forbiddenMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole creates a middleware that checks if the user has any of the required roles.
// The super admin acts as admin.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return require(func(p entity.Principal) bool {
		return p.HasRole(roles...)
	})
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return require(entity.Principal.IsAdmin)(next)
}

// RequireSuperAdmin admits only the configured super admin
func RequireSuperAdmin(next http.Handler) http.Handler {
	return require(entity.Principal.IsSuperAdmin)(next)
}

// RequireEnabledRole rejects principals whose role was switched off in role permissions.
// Admins are never affected.
func RequireEnabledRole(permissions service.RolePermissionService, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if principal.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			enabled, err := permissions.IsEnabled(r.Context(), principal.Role())
			if err != nil {
				log.Errorf("Failed to check role permission of %s: %+v", principal.Role(), err)
				response.InternalServerError(w, "Failed to check role permission")
				return
			}
			if !enabled {
				response.Forbidden(w, "Your role has been disabled by the administrator")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
