package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendMessageRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// Response DTOs

type NotificationResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	RecipientName    string    `json:"recipient_name,omitempty"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	NotificationType string    `json:"notification_type"`
	Priority         string    `json:"priority"`
	IsRead           bool      `json:"is_read"`
	RelatedID        *string   `json:"related_id,omitempty"`
	HasFile          bool      `json:"has_file"`
	CreatedAt        time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type CleanupResponse struct {
	RetentionDays int       `json:"retention_days"`
	Cutoff        time.Time `json:"cutoff"`
	Matched       int       `json:"matched"`
	Deleted       int64     `json:"deleted"`
	FilesRemoved  int       `json:"files_removed"`
	DryRun        bool      `json:"dry_run"`
}
