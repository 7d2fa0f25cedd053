package models

import (
	"time"

	"github.com/google/uuid"
)

// Flavor represents a row in the flavors table.
type Flavor struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	IsFavorite bool      `json:"is_favorite" db:"is_favorite"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
