package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/middlewares"
	"github.com/acmeweb/acme-api/internal/models"
)

// ProductRequest is the JSON body for creating or updating a product.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func productCreateFields(req ProductRequest) map[string]any {
	return map[string]any{
		"id":          uuid.New(),
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
	}
}

func productUpdateFields(req ProductRequest) map[string]any {
	return map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
	}
}

// FavoriteLister lists a user's favorites.
type FavoriteLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
}

// FavoriteRequest is the JSON body for favoriting a product.
type FavoriteRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// pathUser parses the {id} path parameter and checks it names the
// authenticated user; favorites are only visible to their owner.
func pathUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID, ok := parseIDParam(w, r, "id")
	if !ok {
		return uuid.Nil, false
	}
	authID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
		return uuid.Nil, false
	}
	if pathID != authID {
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return uuid.Nil, false
	}
	return authID, true
}

// NewUserFavoritesListHandler returns GET /api/users/{id}/favorites.
func NewUserFavoritesListHandler(repo FavoriteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathUser(w, r)
		if !ok {
			return
		}

		favorites, err := repo.ListByUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, favorites)
	}
}

// NewUserFavoriteCreateHandler returns POST /api/users/{id}/favorites.
// Favoriting the same product twice yields 409: the pair uniqueness
// is enforced by the store, not pre-checked.
func NewUserFavoriteCreateHandler(
	repo ResourceRepository[models.Favorite],
	validate *validator.Validate,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathUser(w, r)
		if !ok {
			return
		}

		req, ok := decodeAndValidate[FavoriteRequest](w, r, validate)
		if !ok {
			return
		}

		fields := map[string]any{
			"id":         uuid.New(),
			"user_id":    userID,
			"product_id": req.ProductID,
		}
		favorite, err := repo.Create(r.Context(), fields)
		if err != nil {
			writeError(w, err)
			return
		}

		publishFromFields(r.Context(), events, "favorites", "created", fields)
		writeJSON(w, http.StatusCreated, favorite)
	}
}

// NewUserFavoriteDeleteHandler returns
// DELETE /api/users/{id}/favorites/{favoriteID}. Idempotent; scoped
// to the owning user.
func NewUserFavoriteDeleteHandler(
	repo ResourceRepository[models.Favorite],
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathUser(w, r)
		if !ok {
			return
		}

		favoriteID, ok := parseIDParam(w, r, "favoriteID")
		if !ok {
			return
		}

		rec, err := repo.Destroy(r.Context(), favoriteID, &userID)
		if err != nil {
			writeError(w, err)
			return
		}

		if rec != nil && events != nil {
			events.PublishChange(r.Context(), "favorites", "deleted", favoriteID)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
