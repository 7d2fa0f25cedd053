package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/acmeweb/acme-api/internal/middlewares"
	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/storeerr"
)

type fakeFavoriteLister struct {
	listFn func(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
}

func (f *fakeFavoriteLister) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	return f.listFn(ctx, userID)
}

func TestUserFavoritesListHandler(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name         string
		pathID       string
		authID       *uuid.UUID
		expectedCode int
		expectedBody string
	}{
		{
			name:         "own favorites",
			pathID:       userID.String(),
			authID:       &userID,
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "no identity",
			pathID:       userID.String(),
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Not authorized"}`,
		},
		{
			name:         "someone else's favorites",
			pathID:       otherID.String(),
			authID:       &userID,
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"Forbidden"}`,
		},
		{
			name:         "malformed user id",
			pathID:       "nope",
			authID:       &userID,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeFavoriteLister{
				listFn: func(_ context.Context, id uuid.UUID) ([]models.Favorite, error) {
					assert.Equal(t, userID, id)
					return []models.Favorite{}, nil
				},
			}

			router := chi.NewRouter()
			router.Get("/api/users/{id}/favorites", NewUserFavoritesListHandler(repo))

			req := httptest.NewRequest(http.MethodGet, "/api/users/"+tt.pathID+"/favorites", nil)
			if tt.authID != nil {
				req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), *tt.authID))
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestUserFavoriteCreateHandler(t *testing.T) {
	validate := validator.New()
	userID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name         string
		body         string
		repoErr      error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "success",
			body:         `{"product_id":"` + productID.String() + `"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing product id",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid field values"}`,
		},
		{
			name:         "already favorited",
			body:         `{"product_id":"` + productID.String() + `"}`,
			repoErr:      storeerr.ErrUniqueViolation,
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"Record already exists"}`,
		},
		{
			name:         "unknown product",
			body:         `{"product_id":"` + uuid.NewString() + `"}`,
			repoErr:      storeerr.ErrForeignKeyViolation,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Referenced record does not exist"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository[models.Favorite]{
				createFn: func(_ context.Context, fields map[string]any) (*models.Favorite, error) {
					assert.Equal(t, userID, fields["user_id"])
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &models.Favorite{
						ID:        fields["id"].(uuid.UUID),
						UserID:    userID,
						ProductID: fields["product_id"].(uuid.UUID),
					}, nil
				},
			}
			events := &recordingPublisher{}

			router := chi.NewRouter()
			router.Post("/api/users/{id}/favorites", NewUserFavoriteCreateHandler(repo, validate, events))

			req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID.String()+"/favorites", bytes.NewBufferString(tt.body))
			req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}

			if tt.expectedCode == http.StatusCreated {
				assert.Equal(t, 1, events.calls)
				assert.Equal(t, "favorites", events.resource)
				assert.Equal(t, "created", events.action)
			} else {
				assert.Zero(t, events.calls)
			}
		})
	}
}

func TestUserFavoriteDeleteHandler(t *testing.T) {
	userID := uuid.New()
	favoriteID := uuid.New()

	t.Run("scoped to the path user", func(t *testing.T) {
		var gotOwner *uuid.UUID
		repo := &fakeRepository[models.Favorite]{
			destroyFn: func(_ context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Favorite, error) {
				gotOwner = ownerID
				return &models.Favorite{ID: id}, nil
			},
		}
		events := &recordingPublisher{}

		router := chi.NewRouter()
		router.Delete("/api/users/{id}/favorites/{favoriteID}", NewUserFavoriteDeleteHandler(repo, events))

		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.String()+"/favorites/"+favoriteID.String(), nil)
		req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.NotNil(t, gotOwner)
		assert.Equal(t, userID, *gotOwner)
		assert.Equal(t, 1, events.calls)
		assert.Equal(t, "deleted", events.action)
	})

	t.Run("already removed", func(t *testing.T) {
		repo := &fakeRepository[models.Favorite]{
			destroyFn: func(context.Context, uuid.UUID, *uuid.UUID) (*models.Favorite, error) {
				return nil, nil
			},
		}
		events := &recordingPublisher{}

		router := chi.NewRouter()
		router.Delete("/api/users/{id}/favorites/{favoriteID}", NewUserFavoriteDeleteHandler(repo, events))

		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.String()+"/favorites/"+uuid.NewString(), nil)
		req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Zero(t, events.calls)
	})

	t.Run("path user mismatch", func(t *testing.T) {
		repo := &fakeRepository[models.Favorite]{}
		router := chi.NewRouter()
		router.Delete("/api/users/{id}/favorites/{favoriteID}", NewUserFavoriteDeleteHandler(repo, nil))

		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+uuid.NewString()+"/favorites/"+favoriteID.String(), nil)
		req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
