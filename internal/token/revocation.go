package token

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks outstanding refresh tokens by their jti. A token
// absent from the store is treated as revoked.
type RevocationStore interface {
	Save(ctx context.Context, tokenID, subject string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Delete(ctx context.Context, tokenID string) error
}

const refreshKeyPrefix = "refresh:"

// RedisRevocationStore keeps refresh-token records in Redis. The key TTL
// mirrors the token's own expiry, so expired tokens fall out of the store
// without any sweeping.
type RedisRevocationStore struct {
	rdb *redis.Client
}

// NewRedisRevocationStore wraps an existing Redis client.
func NewRedisRevocationStore(rdb *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{rdb: rdb}
}

func (s *RedisRevocationStore) Save(ctx context.Context, tokenID, subject string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+tokenID, subject, ttl).Err()
}

func (s *RedisRevocationStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.rdb.Get(ctx, refreshKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisRevocationStore) Delete(ctx context.Context, tokenID string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+tokenID).Err()
}
