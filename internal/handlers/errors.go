package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/services"
	"github.com/acmeweb/acme-api/internal/storeerr"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single place repository and service errors are
// translated into HTTP statuses. Unexpected errors never leak detail
// to the client; the full error is logged server-side.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storeerr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, storeerr.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, storeerr.ErrUniqueViolation):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "Record already exists"})
	case errors.Is(err, storeerr.ErrForeignKeyViolation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Referenced record does not exist"})
	case errors.Is(err, storeerr.ErrNotNullViolation), errors.Is(err, storeerr.ErrCheckViolation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid field values"})
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Username or email already exists"})
	case errors.Is(err, services.ErrNotAuthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func writeInvalidBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

// Validator detail stays in the log; clients get the same body as a
// store-level check failure.
func writeValidationError(w http.ResponseWriter, err error) {
	logger.Log.Infow("request validation failed", "err", err)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid field values"})
}
