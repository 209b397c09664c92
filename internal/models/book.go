package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID            uuid.UUID
	Title         string
	Author        string
	Publisher     string
	PublishedDate time.Time
	PageCount     int
	Language      string
	UserID        uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
