package usecase

import (
	"errors"
	"strings"

	"medisafe/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrForbidden          = apperror.Forbidden("You do not have permission to perform this action")
	ErrUserNotFound       = apperror.NotFound("User not found")
	ErrInvalidDateFormat  = apperror.Validation("Invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat  = apperror.Validation("Invalid time format, use HH:MM")
	ErrInvalidID          = apperror.Validation("Invalid id")
	ErrAuditLogNotFound   = apperror.NotFound("Audit log not found")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid username or password")
	ErrAccountDisabled    = apperror.Unauthorized("Account is disabled")
	ErrRoleDisabled       = apperror.Forbidden("Your role has been disabled by the administrator")
	ErrInvalidToken       = apperror.Unauthorized("Invalid or expired token")
	ErrTokenRevoked       = apperror.Unauthorized("Token has been revoked")
	ErrUsernameTaken      = apperror.Conflict("Username already exists")
	ErrEmailTaken         = apperror.Conflict("Email already exists")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
