package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored in the users table
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Role         string
	IsVerified   bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
