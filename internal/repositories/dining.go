package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/resource"
)

// CustomerRepository handles the customers table.
type CustomerRepository struct {
	*resource.Repository[models.Customer]
}

func NewCustomerRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CustomerRepository {
	return &CustomerRepository{
		Repository: resource.New[models.Customer](db, txGetter, resource.Definition{
			Table:      "customers",
			Columns:    []string{"id", "name", "email"},
			Updatable:  []string{"name", "email"},
			OrderBy:    "name",
			Timestamps: true,
		}),
	}
}

// RestaurantRepository handles the restaurants table.
type RestaurantRepository struct {
	*resource.Repository[models.Restaurant]
}

func NewRestaurantRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RestaurantRepository {
	return &RestaurantRepository{
		Repository: resource.New[models.Restaurant](db, txGetter, resource.Definition{
			Table:      "restaurants",
			Columns:    []string{"id", "name", "location"},
			Updatable:  []string{"name", "location"},
			OrderBy:    "name",
			Timestamps: true,
		}),
	}
}

// ReservationRepository handles the reservations table. Both foreign
// keys are enforced by the store at insert time.
type ReservationRepository struct {
	*resource.Repository[models.Reservation]
}

func NewReservationRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ReservationRepository {
	return &ReservationRepository{
		Repository: resource.New[models.Reservation](db, txGetter, resource.Definition{
			Table:      "reservations",
			Columns:    []string{"id", "customer_id", "restaurant_id", "reservation_date", "party_count"},
			Updatable:  []string{"reservation_date", "party_count"},
			OrderBy:    "reservation_date",
			Timestamps: true,
		}),
	}
}

// ListByCustomer returns a customer's reservations, soonest first.
func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reservation, error) {
	return r.FetchBy(ctx, "customer_id", customerID)
}
