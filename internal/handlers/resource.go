package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/middlewares"
)

// ResourceRepository is the generic repository surface the handlers
// dispatch to. Every entity repository satisfies it.
type ResourceRepository[T any] interface {
	Create(ctx context.Context, fields map[string]any) (*T, error)
	FetchAll(ctx context.Context) ([]T, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID, fields map[string]any) (*T, error)
	Destroy(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*T, error)
}

// EventPublisher emits change events after successful writes.
type EventPublisher interface {
	PublishChange(ctx context.Context, resourceName, action string, recordID uuid.UUID)
}

// NewListHandler returns GET /api/{resource}: the full ordered
// collection, an empty array when the table is empty.
func NewListHandler[T any](repo ResourceRepository[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := repo.FetchAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// NewGetHandler returns GET /api/{resource}/{id}.
func NewGetHandler[T any](repo ResourceRepository[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		rec, err := repo.FetchByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// NewCreateHandler returns POST /api/{resource}. The request body is
// decoded into Req, validated, and converted into an insert field map
// by build. build must set "id" so the change event can reference it.
func NewCreateHandler[Req any, T any](
	repo ResourceRepository[T],
	validate *validator.Validate,
	resourceName string,
	build func(req Req) map[string]any,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAndValidate[Req](w, r, validate)
		if !ok {
			return
		}

		fields := build(req)
		rec, err := repo.Create(r.Context(), fields)
		if err != nil {
			writeError(w, err)
			return
		}

		publishFromFields(r.Context(), events, resourceName, "created", fields)
		writeJSON(w, http.StatusCreated, rec)
	}
}

// NewUpdateHandler returns PUT /api/{resource}/{id}. When owned is
// true the update is scoped to the authenticated user, and a record
// owned by someone else yields 403 rather than 404.
func NewUpdateHandler[Req any, T any](
	repo ResourceRepository[T],
	validate *validator.Validate,
	resourceName string,
	build func(req Req) map[string]any,
	owned bool,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		req, ok := decodeAndValidate[Req](w, r, validate)
		if !ok {
			return
		}

		owner, ok := ownerScope(w, r, owned)
		if !ok {
			return
		}

		rec, err := repo.Update(r.Context(), id, owner, build(req))
		if err != nil {
			writeError(w, err)
			return
		}

		if events != nil {
			events.PublishChange(r.Context(), resourceName, "updated", id)
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// NewDeleteHandler returns DELETE /api/{resource}/{id}. Deleting an
// absent record still responds 204.
func NewDeleteHandler[T any](
	repo ResourceRepository[T],
	resourceName string,
	owned bool,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		owner, ok := ownerScope(w, r, owned)
		if !ok {
			return
		}

		rec, err := repo.Destroy(r.Context(), id, owner)
		if err != nil {
			writeError(w, err)
			return
		}

		if rec != nil && events != nil {
			events.PublishChange(r.Context(), resourceName, "deleted", id)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseIDParam parses a UUID path parameter, answering 400 on a
// malformed value.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into Req and runs the
// validator tags, answering 400 on either failure.
func decodeAndValidate[Req any](w http.ResponseWriter, r *http.Request, validate *validator.Validate) (Req, bool) {
	var req Req
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return req, false
	}
	return req, true
}

// ownerScope resolves the owner filter for owner-scoped writes from
// the authenticated identity, answering 401 when it is missing.
func ownerScope(w http.ResponseWriter, r *http.Request, owned bool) (*uuid.UUID, bool) {
	if !owned {
		return nil, true
	}
	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
		return nil, false
	}
	return &userID, true
}

func publishFromFields(ctx context.Context, events EventPublisher, resourceName, action string, fields map[string]any) {
	if events == nil {
		return
	}
	if id, ok := fields["id"].(uuid.UUID); ok {
		events.PublishChange(ctx, resourceName, action, id)
	}
}
