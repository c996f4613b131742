// Package cache holds the Redis-backed apartment lock and the cached list of
// available apartments.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/config"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still carries our token, so an
// expired lock re-acquired by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client        redis.UniversalClient
	log           *slog.Logger
	apartmentsTTL time.Duration
	lockTTL       time.Duration
}

func NewRedisCache(cfg config.Redis, apartmentsTTL, lockTTL time.Duration, log *slog.Logger) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		apartmentsTTL, lockTTL, log,
	)
}

func NewRedisCacheWithClient(client redis.UniversalClient, apartmentsTTL, lockTTL time.Duration, log *slog.Logger) *RedisCache {
	return &RedisCache{
		client:        client,
		log:           log,
		apartmentsTTL: apartmentsTTL,
		lockTTL:       lockTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetAvailable reports ok=false on a cache miss. The returned generation
// must be passed back to SetAvailable when the caller refills the entry.
func (c *RedisCache) GetAvailable(ctx context.Context) ([]domain.Apartment, int64, bool, error) {
	gen, err := c.client.Get(ctx, availableGenKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("failed to get available apartments generation: %w", err)
	}

	data, err := c.client.Get(ctx, availableKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}

		return nil, gen, false, fmt.Errorf("failed to get available apartments: %w", err)
	}

	var apartments []domain.Apartment
	if err := json.Unmarshal(data, &apartments); err != nil {
		return nil, gen, false, fmt.Errorf("failed to decode available apartments: %w", err)
	}

	return apartments, gen, true, nil
}

// SetAvailable stores apartments under the generation they were read in.
// A fill that lost a race with InvalidateAvailable lands on a retired key
// and is never served.
func (c *RedisCache) SetAvailable(ctx context.Context, gen int64, apartments []domain.Apartment) error {
	payload, err := json.Marshal(apartments)
	if err != nil {
		return fmt.Errorf("failed to encode available apartments: %w", err)
	}

	return c.client.Set(ctx, availableKey(gen), payload, c.apartmentsTTL).Err()
}

// InvalidateAvailable retires the current generation.
func (c *RedisCache) InvalidateAvailable(ctx context.Context) error {
	return c.client.Incr(ctx, availableGenKey()).Err()
}

// Lock takes the apartment lock with SET NX. The returned func releases it
// and is safe to call once the request context is gone.
func (c *RedisCache) Lock(ctx context.Context, apartmentID int64) (func(), error) {
	key := apartmentLockKey(apartmentID)
	token := uuid.NewString()

	ok, err := c.client.SetNX(ctx, key, token, c.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire apartment lock: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: apartment %d", apperrors.ErrApartmentLocked, apartmentID)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, c.client, []string{key}, token).Err(); err != nil {
			c.log.Warn("failed to release apartment lock", slog.Int64("apartment_id", apartmentID), sl.Err(err))
		}
	}, nil
}

func availableKey(gen int64) string {
	return fmt.Sprintf("cache:apartments:available:%d", gen)
}

func availableGenKey() string {
	return "cache:apartments:available:gen"
}

func apartmentLockKey(apartmentID int64) string {
	return fmt.Sprintf("lock:apartment:%d", apartmentID)
}
