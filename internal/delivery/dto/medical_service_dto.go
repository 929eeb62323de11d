package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicalServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=150"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

type UpdateMedicalServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=150"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	IsActive    *bool           `json:"is_active"`
}

// Response DTOs

type MedicalServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MedicalServiceListResponse struct {
	Services []MedicalServiceResponse `json:"services"`
	Total    int64                    `json:"total"`
}
