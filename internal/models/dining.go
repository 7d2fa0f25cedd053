package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a row in the customers table.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Restaurant represents a row in the restaurants table.
type Restaurant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Location  *string   `json:"location" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Reservation books a customer into a restaurant. Both foreign
// keys must reference existing rows.
type Reservation struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CustomerID      uuid.UUID `json:"customer_id" db:"customer_id"`
	RestaurantID    uuid.UUID `json:"restaurant_id" db:"restaurant_id"`
	ReservationDate time.Time `json:"reservation_date" db:"reservation_date"`
	PartyCount      int       `json:"party_count" db:"party_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
