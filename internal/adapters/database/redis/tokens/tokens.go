// Package tokens stores revoked bearer tokens until their natural
// expiry, so a logged-out token stops verifying before its exp claim
// runs out.
package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.redis.Set(ctx, token, "revoked", ttl).Err()
}

func (s *Storage) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.redis.Get(ctx, token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
