package dto

import (
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// AuditLogFilterRequest is read from the query string
type AuditLogFilterRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Action string `json:"action" validate:"omitempty,max=100"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	UserID    *uuid.UUID  `json:"user_id,omitempty"`
	ActorName string      `json:"actor_name,omitempty"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuditLogListResponse carries the page actually served after clamping
type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
	Page  int                `json:"-"`
	Limit int                `json:"-"`
}
