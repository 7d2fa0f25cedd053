// Package token implements the authentication credential: a signed,
// expiring JWT carrying the user identity and a unique token id, plus
// a Redis-backed revocation list keyed by that token id.
package token

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT issues and validates signed tokens.
type JWT struct {
	secretKey string
	exp       time.Duration
}

// Opt configures a JWT instance.
type Opt func(*JWT)

// WithSecretKey sets the HMAC signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) { j.secretKey = secret }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.exp = exp }
}

// New creates a JWT instance with the given options.
func New(opts ...Opt) *JWT {
	j := &JWT{
		secretKey: "secret",
		exp:       time.Hour,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Claims are the parsed contents of a valid token.
type Claims struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// Generate creates a signed token for the given user id. Every token
// carries a unique jti so it can be revoked individually.
func (j *JWT) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     uuid.NewString(),
		"exp":     now.Add(j.exp).Unix(),
		"iat":     now.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(j.secretKey))
}

// Validate checks the signature and expiry of the token string.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetClaims parses the token string and returns its claims if the
// signature is valid and the token has not expired.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := mapClaims["user_id"].(string)
	if !ok {
		return nil, errors.New("user_id not found in token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid user_id format")
	}

	tokenID, _ := mapClaims["jti"].(string)

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("exp not found in token")
	}

	return &Claims{
		UserID:    userID,
		TokenID:   tokenID,
		ExpiresAt: exp.Time,
	}, nil
}

// GetTokenFromRequest extracts the bearer token from the
// Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
