package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents a dealership staff account with dashboard access
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAdmin creates a new admin account
func NewAdmin(email, name, passwordHash, role string) *Admin {
	now := time.Now()
	return &Admin{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
