package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache:apartments:available:3", availableKey(3))
	assert.Equal(t, "cache:apartments:available:gen", availableGenKey())
	assert.Equal(t, "lock:apartment:42", apartmentLockKey(42))
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client, time.Minute, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer c.Close()

	ctx := context.Background()

	apartments, _, ok, err := c.GetAvailable(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, apartments)

	unlock, err := c.Lock(ctx, 7)
	require.Error(t, err)
	assert.Nil(t, unlock)
	assert.NotErrorIs(t, err, apperrors.ErrApartmentLocked)
}
