package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/middlewares"
	"github.com/acmeweb/acme-api/internal/models"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CurrentUserGetter resolves an authenticated identity to its user record.
type CurrentUserGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Logouter revokes a presented token.
type Logouter interface {
	Logout(ctx context.Context, tokenString string) error
}

// TokenExtractor pulls the bearer token out of a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// RegisterRequest is the JSON body for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the JSON body for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token back to the client.
type LoginResponse struct {
	Token string `json:"token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Ensures unique username and email. Password is hashed before storing and never echoed back.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} models.User "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Username or email already exists / invalid request"
// @Router /api/auth/register [post]
func NewRegisterHandler(svc Registerer, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidBody(w)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate a user and return a signed expiring token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Token returned"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /api/auth/login [post]
func NewLoginHandler(svc Loginer, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidBody(w)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		tok, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: tok})
	}
}

// NewMeHandler returns the authenticated user's public fields.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} handlers.ErrorResponse
// @Router /api/auth/me [get]
func NewMeHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewLogoutHandler revokes the presented token.
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 204 "Token revoked"
// @Failure 401 {object} handlers.ErrorResponse
// @Router /api/auth/logout [post]
func NewLogoutHandler(svc Logouter, tokens TokenExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, err := tokens.GetTokenFromRequest(r.Context(), r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
			return
		}

		if err := svc.Logout(r.Context(), tok); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
