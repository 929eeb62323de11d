package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
}

// LoginRequest accepts either a username or an email address in Username
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID          *uuid.UUID       `json:"id,omitempty"`
	Username    string           `json:"username"`
	Email       string           `json:"email,omitempty"`
	FullName    string           `json:"full_name"`
	Role        string           `json:"role"`
	IsActive    bool             `json:"is_active"`
	IsSuperuser bool             `json:"is_superuser"`
	SuperAdmin  bool             `json:"super_admin,omitempty"`
	DateJoined  *time.Time       `json:"date_joined,omitempty"`
	LastLogin   *time.Time       `json:"last_login,omitempty"`
	Profile     *ProfileResponse `json:"profile,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
