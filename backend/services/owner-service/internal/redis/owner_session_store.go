package redisstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"isuride/backend/services/owner-service/internal/models"
)

// ErrCacheMiss is returned when no owner is cached for the token.
var ErrCacheMiss = errors.New("owner session cache miss")

const keyPrefix = "owners:session:"

// OwnerSessionStore caches owners by session access token. Keys hold a digest of the
// token and values never include owner credentials.
type OwnerSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOwnerSessionStore returns redis-backed store.
func NewOwnerSessionStore(client *redis.Client, ttl time.Duration) *OwnerSessionStore {
	return &OwnerSessionStore{client: client, ttl: ttl}
}

// Key returns the redis key for token.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Save caches owner under the access token it was resolved from.
func (s *OwnerSessionStore) Save(ctx context.Context, token string, owner *models.Owner) error {
	data, err := json.Marshal(owner)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, Key(token), data, s.ttl).Err()
}

// Get returns the cached owner or ErrCacheMiss.
func (s *OwnerSessionStore) Get(ctx context.Context, token string) (*models.Owner, error) {
	result, err := s.client.Get(ctx, Key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var owner models.Owner
	if err := json.Unmarshal([]byte(result), &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}
