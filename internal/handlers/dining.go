package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/models"
)

// CustomerRequest is the JSON body for creating or updating a customer.
type CustomerRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func customerCreateFields(req CustomerRequest) map[string]any {
	return map[string]any{
		"id":    uuid.New(),
		"name":  req.Name,
		"email": req.Email,
	}
}

func customerUpdateFields(req CustomerRequest) map[string]any {
	return map[string]any{
		"name":  req.Name,
		"email": req.Email,
	}
}

// RestaurantRequest is the JSON body for creating or updating a restaurant.
type RestaurantRequest struct {
	Name     string  `json:"name" validate:"required"`
	Location *string `json:"location"`
}

func restaurantCreateFields(req RestaurantRequest) map[string]any {
	return map[string]any{
		"id":       uuid.New(),
		"name":     req.Name,
		"location": req.Location,
	}
}

func restaurantUpdateFields(req RestaurantRequest) map[string]any {
	return map[string]any{
		"name":     req.Name,
		"location": req.Location,
	}
}

// ReservationRequest is the JSON body for booking a reservation.
type ReservationRequest struct {
	RestaurantID    uuid.UUID `json:"restaurant_id" validate:"required"`
	ReservationDate time.Time `json:"reservation_date" validate:"required"`
	PartyCount      int       `json:"party_count" validate:"required,gt=0"`
}

// CustomerReservationLister lists a customer's reservations.
type CustomerReservationLister interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error)
}

// NewCustomerReservationsListHandler returns
// GET /api/customers/{id}/reservations.
func NewCustomerReservationsListHandler(repo CustomerReservationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		reservations, err := repo.ListByCustomer(r.Context(), customerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reservations)
	}
}

// NewCustomerReservationCreateHandler returns
// POST /api/customers/{id}/reservations. Both foreign keys must name
// existing rows; the store enforces it at insert.
func NewCustomerReservationCreateHandler(
	repo ResourceRepository[models.Reservation],
	validate *validator.Validate,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		req, ok := decodeAndValidate[ReservationRequest](w, r, validate)
		if !ok {
			return
		}

		fields := map[string]any{
			"id":               uuid.New(),
			"customer_id":      customerID,
			"restaurant_id":    req.RestaurantID,
			"reservation_date": req.ReservationDate,
			"party_count":      req.PartyCount,
		}
		reservation, err := repo.Create(r.Context(), fields)
		if err != nil {
			writeError(w, err)
			return
		}

		publishFromFields(r.Context(), events, "reservations", "created", fields)
		writeJSON(w, http.StatusCreated, reservation)
	}
}
