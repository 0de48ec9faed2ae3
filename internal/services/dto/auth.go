package dto

import "aula_backend/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,person-name"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,strong-password"`
}

// RegisterResponse returns the pending-registration token the client must
// present together with the emailed code.
type RegisterResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type ConfirmRequest struct {
	Token string `json:"token" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type ConfirmResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	User   UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email,omitempty"`
	Role  models.UserRole `json:"role"`
}
