package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// BookServiceRequest books either a catalog service (service_id) or a free-named one
type BookServiceRequest struct {
	ServiceID   *string `json:"service_id" validate:"omitempty,uuid"`
	ServiceName string  `json:"service_name" validate:"omitempty,max=150"`
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime string  `json:"booking_time" validate:"required,datetime=15:04"`
	Notes       *string `json:"notes"`
}

type UpdateBookedServiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Completed Cancelled"`
}

// Response DTOs

type BookedServiceResponse struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"user_id"`
	PatientName string              `json:"patient_name,omitempty"`
	ServiceID   *uuid.UUID          `json:"service_id,omitempty"`
	ServiceName string              `json:"service_name"`
	Price       decimal.NullDecimal `json:"price"`
	BookingDate string              `json:"booking_date"`
	BookingTime string              `json:"booking_time"`
	Status      string              `json:"status"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
