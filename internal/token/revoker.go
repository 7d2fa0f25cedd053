package token

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/acmeweb/acme-api/internal/logger"
)

const revokedKeyPrefix = "revoked_token:"

// Revoker denylists token ids in Redis. An entry lives only as long
// as the token itself would, so the list never grows unbounded.
type Revoker struct {
	rdb *redis.Client
}

// NewRevoker creates a Revoker over the given Redis client.
func NewRevoker(rdb *redis.Client) *Revoker {
	return &Revoker{rdb: rdb}
}

// Revoke denylists the token id for the given remaining lifetime.
// A token that has already expired needs no entry.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("empty token id")
	}
	if ttl <= 0 {
		return nil
	}

	err := r.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
	if err != nil {
		logger.Log.Errorw("failed to revoke token", "token_id", tokenID, "error", err)
		return err
	}
	return nil
}

// IsRevoked reports whether the token id has been denylisted.
func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	_, err := r.rdb.Get(ctx, revokedKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
