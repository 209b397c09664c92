package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID
	Rating     int
	ReviewText string
	UserID     uuid.UUID
	BookID     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
