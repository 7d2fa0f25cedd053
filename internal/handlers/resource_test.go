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

// fakeRepository implements ResourceRepository with swappable behavior
// per test case.
type fakeRepository[T any] struct {
	createFn   func(ctx context.Context, fields map[string]any) (*T, error)
	fetchAllFn func(ctx context.Context) ([]T, error)
	fetchByID  func(ctx context.Context, id uuid.UUID) (*T, error)
	updateFn   func(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID, fields map[string]any) (*T, error)
	destroyFn  func(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*T, error)
}

func (f *fakeRepository[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	return f.createFn(ctx, fields)
}

func (f *fakeRepository[T]) FetchAll(ctx context.Context) ([]T, error) {
	return f.fetchAllFn(ctx)
}

func (f *fakeRepository[T]) FetchByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return f.fetchByID(ctx, id)
}

func (f *fakeRepository[T]) Update(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID, fields map[string]any) (*T, error) {
	return f.updateFn(ctx, id, ownerID, fields)
}

func (f *fakeRepository[T]) Destroy(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*T, error) {
	return f.destroyFn(ctx, id, ownerID)
}

// recordingPublisher captures published change events.
type recordingPublisher struct {
	resource string
	action   string
	recordID uuid.UUID
	calls    int
}

func (p *recordingPublisher) PublishChange(_ context.Context, resourceName, action string, recordID uuid.UUID) {
	p.resource = resourceName
	p.action = action
	p.recordID = recordID
	p.calls++
}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name         string
		records      []models.Flavor
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "empty collection",
			records:      []models.Flavor{},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name: "two records",
			records: []models.Flavor{
				{Name: "chocolate"},
				{Name: "vanilla", IsFavorite: true},
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "repository error",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository[models.Flavor]{
				fetchAllFn: func(context.Context) ([]models.Flavor, error) {
					return tt.records, tt.err
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/api/flavors", nil)
			rr := httptest.NewRecorder()

			NewListHandler[models.Flavor](repo)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestGetHandler(t *testing.T) {
	flavorID := uuid.New()

	tests := []struct {
		name         string
		path         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "found",
			path:         "/api/flavors/" + flavorID.String(),
			expectedCode: http.StatusOK,
		},
		{
			name:         "malformed id",
			path:         "/api/flavors/not-a-uuid",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid id"}`,
		},
		{
			name:         "not found",
			path:         "/api/flavors/" + uuid.NewString(),
			err:          storeerr.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository[models.Flavor]{
				fetchByID: func(_ context.Context, id uuid.UUID) (*models.Flavor, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &models.Flavor{ID: id, Name: "chocolate"}, nil
				},
			}

			router := chi.NewRouter()
			router.Get("/api/flavors/{id}", NewGetHandler[models.Flavor](repo))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestCreateHandler(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name           string
		body           string
		repoErr        error
		expectedCode   int
		expectedBody   string
		expectPublish  bool
		expectedAction string
	}{
		{
			name:           "success",
			body:           `{"name":"pistachio","is_favorite":true}`,
			expectedCode:   http.StatusCreated,
			expectPublish:  true,
			expectedAction: "created",
		},
		{
			name:         "invalid JSON",
			body:         `{name}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid request body"}`,
		},
		{
			name:         "missing required field",
			body:         `{"is_favorite":true}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid field values"}`,
		},
		{
			name:         "duplicate",
			body:         `{"name":"pistachio"}`,
			repoErr:      storeerr.ErrUniqueViolation,
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"Record already exists"}`,
		},
		{
			name:         "dangling reference",
			body:         `{"name":"pistachio"}`,
			repoErr:      storeerr.ErrForeignKeyViolation,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Referenced record does not exist"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFields map[string]any
			repo := &fakeRepository[models.Flavor]{
				createFn: func(_ context.Context, fields map[string]any) (*models.Flavor, error) {
					gotFields = fields
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &models.Flavor{ID: fields["id"].(uuid.UUID), Name: "pistachio", IsFavorite: true}, nil
				},
			}
			events := &recordingPublisher{}

			handler := NewCreateHandler[FlavorRequest, models.Flavor](repo, validate, "flavors", flavorCreateFields, events)

			req := httptest.NewRequest(http.MethodPost, "/api/flavors", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}

			if tt.expectPublish {
				assert.Equal(t, 1, events.calls)
				assert.Equal(t, "flavors", events.resource)
				assert.Equal(t, tt.expectedAction, events.action)
				assert.Equal(t, gotFields["id"], events.recordID)
			} else {
				assert.Zero(t, events.calls)
			}
		})
	}
}

func TestCreateHandler_NilPublisher(t *testing.T) {
	repo := &fakeRepository[models.Flavor]{
		createFn: func(_ context.Context, fields map[string]any) (*models.Flavor, error) {
			return &models.Flavor{Name: "mint"}, nil
		},
	}

	handler := NewCreateHandler[FlavorRequest, models.Flavor](repo, validator.New(), "flavors", flavorCreateFields, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/flavors", bytes.NewBufferString(`{"name":"mint"}`))
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() { handler(rr, req) })
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestUpdateHandler(t *testing.T) {
	validate := validator.New()
	flavorID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		path          string
		body          string
		owned         bool
		authenticated bool
		repoErr       error
		expectedCode  int
		expectedBody  string
	}{
		{
			name:         "success",
			path:         "/api/flavors/" + flavorID.String(),
			body:         `{"name":"praline"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "malformed id",
			path:         "/api/flavors/123",
			body:         `{"name":"praline"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid id"}`,
		},
		{
			name:         "validation failure",
			path:         "/api/flavors/" + flavorID.String(),
			body:         `{"is_favorite":true}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid field values"}`,
		},
		{
			name:         "not found",
			path:         "/api/flavors/" + uuid.NewString(),
			body:         `{"name":"praline"}`,
			repoErr:      storeerr.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Not found"}`,
		},
		{
			name:         "owned without identity",
			path:         "/api/flavors/" + flavorID.String(),
			body:         `{"name":"praline"}`,
			owned:        true,
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Not authorized"}`,
		},
		{
			name:          "owned by someone else",
			path:          "/api/flavors/" + flavorID.String(),
			body:          `{"name":"praline"}`,
			owned:         true,
			authenticated: true,
			repoErr:       storeerr.ErrForbidden,
			expectedCode:  http.StatusForbidden,
			expectedBody:  `{"error":"Forbidden"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner *uuid.UUID
			repo := &fakeRepository[models.Flavor]{
				updateFn: func(_ context.Context, id uuid.UUID, ownerID *uuid.UUID, fields map[string]any) (*models.Flavor, error) {
					gotOwner = ownerID
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &models.Flavor{ID: id, Name: "praline"}, nil
				},
			}
			events := &recordingPublisher{}

			router := chi.NewRouter()
			router.Put("/api/flavors/{id}", NewUpdateHandler[FlavorRequest, models.Flavor](repo, validate, "flavors", flavorUpdateFields, tt.owned, events))

			req := httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(tt.body))
			if tt.authenticated {
				req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}

			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, 1, events.calls)
				assert.Equal(t, "updated", events.action)
				assert.Equal(t, flavorID, events.recordID)
			} else {
				assert.Zero(t, events.calls)
			}

			if tt.authenticated && tt.owned && tt.expectedCode != http.StatusBadRequest {
				assert.NotNil(t, gotOwner)
				assert.Equal(t, userID, *gotOwner)
			}
		})
	}
}

func TestDeleteHandler(t *testing.T) {
	flavorID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		path          string
		owned         bool
		authenticated bool
		destroyed     bool
		repoErr       error
		expectedCode  int
		expectPublish bool
	}{
		{
			name:          "success",
			path:          "/api/flavors/" + flavorID.String(),
			destroyed:     true,
			expectedCode:  http.StatusNoContent,
			expectPublish: true,
		},
		{
			// Deleting a record that is already gone is not an error
			// and publishes nothing.
			name:         "absent record",
			path:         "/api/flavors/" + uuid.NewString(),
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "malformed id",
			path:         "/api/flavors/xyz",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "owned without identity",
			path:         "/api/flavors/" + flavorID.String(),
			owned:        true,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:          "owned by someone else",
			path:          "/api/flavors/" + flavorID.String(),
			owned:         true,
			authenticated: true,
			repoErr:       storeerr.ErrForbidden,
			expectedCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository[models.Flavor]{
				destroyFn: func(_ context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Flavor, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					if !tt.destroyed {
						return nil, nil
					}
					return &models.Flavor{ID: id}, nil
				},
			}
			events := &recordingPublisher{}

			router := chi.NewRouter()
			router.Delete("/api/flavors/{id}", NewDeleteHandler[models.Flavor](repo, "flavors", tt.owned, events))

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			if tt.authenticated {
				req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID))
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectPublish {
				assert.Equal(t, 1, events.calls)
				assert.Equal(t, "deleted", events.action)
				assert.Equal(t, flavorID, events.recordID)
			} else {
				assert.Zero(t, events.calls)
			}
		})
	}
}
