package dto

import "github.com/eduintel/eli-api/internal/models"

// LoginRequest authenticates a reviewer.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed token and the reviewer profile.
type LoginResponse struct {
	Token    string           `json:"token"`
	Reviewer *models.Reviewer `json:"reviewer"`
}
