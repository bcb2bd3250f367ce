package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
)

const userCacheKeyPrefix = "user:email:"

// UserCacheRepository caches user lookups in Redis, keyed by email. A miss
// is returned as (nil, nil); the caller falls through to Postgres.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewUserCacheRepository creates a cache repository with the given TTL.
func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{client: client, exp: expiration}
}

// GetByEmail returns the cached user, or nil on a miss or a stale payload.
func (r *UserCacheRepository) GetByEmail(ctx context.Context, email string) (*models.UserWithStats, error) {
	key := userCacheKeyPrefix + email

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("user cache get",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var user models.UserWithStats
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		// Unreadable payloads count as misses.
		logger.Log.Warnw("user cache unmarshal failed", "key", key, "error", err)
		return nil, nil
	}

	logger.Log.Infow("user cache get", "key", key, "error", nil)
	return &user, nil
}

// Set stores the user under its email key.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.UserWithStats) error {
	key := userCacheKeyPrefix + user.Email

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("user cache set",
		"key", key,
		"error", err,
	)

	return err
}

// Delete invalidates the cache entry for an email. Called on every user write.
func (r *UserCacheRepository) Delete(ctx context.Context, email string) error {
	key := userCacheKeyPrefix + email

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("user cache delete",
		"key", key,
		"error", err,
	)

	return err
}
