package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Reviewer roles.
const (
	RoleReviewer = "REVIEWER"
	RoleAdmin    = "ADMIN"
)

// Reviewer is a human account allowed to act on pending approval requests.
type Reviewer struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// JWTClaims carries the authenticated reviewer identity through a request.
type JWTClaims struct {
	ReviewerID string `json:"reviewerId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
