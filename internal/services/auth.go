package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/storeerr"
	"github.com/acmeweb/acme-api/internal/token"
)

// Error variables
var (
	ErrUserAlreadyExists = errors.New("username or email already exists")

	// ErrNotAuthorized deliberately covers unknown user, wrong
	// password, and bad token alike, so callers cannot probe which
	// accounts exist.
	ErrNotAuthorized = errors.New("not authorized")
)

// UserReader defines read operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.User, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, fields map[string]any) (*models.User, error)
}

// TokenIssuer issues and parses signed tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*token.Claims, error)
}

// TokenRevoker denylists an issued token id.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, login, identity lookup, and logout.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	issuer  TokenIssuer
	revoker TokenRevoker
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, issuer TokenIssuer, revoker TokenRevoker) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		issuer:  issuer,
		revoker: revoker,
	}
}

// Register creates a new user with a bcrypt-hashed password and
// returns the stored record. The uniqueness of username and email is
// ultimately enforced by the store; the read-before-write here only
// improves the error message for the common case.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Create(ctx, map[string]any{
		"id":            uuid.New(),
		"username":      username,
		"email":         email,
		"password_hash": string(hashed),
	})
	if err != nil {
		if errors.Is(err, storeerr.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a signed token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		return "", ErrNotAuthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrNotAuthorized
	}

	tok, err := svc.issuer.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return tok, nil
}

// GetUser returns the user behind an authenticated identity.
func (svc *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := svc.reader.FetchByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storeerr.ErrNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (svc *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := svc.issuer.GetClaims(ctx, tokenString)
	if err != nil {
		return ErrNotAuthorized
	}

	return svc.revoker.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
}
