package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"medequip-system/internal/entities"
)

type countingResolver struct {
	status entities.DeviceStatus
	err    error
	calls  int
}

func (r *countingResolver) Resolve(ctx context.Context, deviceID uint64, now time.Time) (entities.DeviceStatus, error) {
	r.calls++
	return r.status, r.err
}

func TestStatusCacheMemoizes(t *testing.T) {
	resolver := &countingResolver{status: entities.StatusInUse}
	cache := NewStatusCache(resolver, nil, zap.NewNop())

	ctx := context.Background()
	assert.Equal(t, entities.StatusInUse, cache.Get(ctx, 1))
	assert.Equal(t, entities.StatusInUse, cache.Get(ctx, 1))
	assert.Equal(t, 1, resolver.calls, "second lookup must hit the cache")

	cache.Get(ctx, 2)
	assert.Equal(t, 2, resolver.calls, "entries are per device")
}

func TestStatusCacheInvalidate(t *testing.T) {
	resolver := &countingResolver{status: entities.StatusAvailable}
	cache := NewStatusCache(resolver, nil, zap.NewNop())

	ctx := context.Background()
	cache.Get(ctx, 1)
	cache.Get(ctx, 2)
	cache.Invalidate(1)

	cache.Get(ctx, 1)
	assert.Equal(t, 3, resolver.calls)

	cache.Get(ctx, 2)
	assert.Equal(t, 3, resolver.calls, "other entries survive a single invalidation")
}

func TestStatusCacheInvalidateAll(t *testing.T) {
	resolver := &countingResolver{status: entities.StatusAvailable}
	cache := NewStatusCache(resolver, nil, zap.NewNop())

	ctx := context.Background()
	cache.Get(ctx, 1)
	cache.Get(ctx, 2)
	cache.InvalidateAll()

	cache.Get(ctx, 1)
	cache.Get(ctx, 2)
	assert.Equal(t, 4, resolver.calls)
}

func TestStatusCacheResetsOnNewCalendarDay(t *testing.T) {
	resolver := &countingResolver{status: entities.StatusAvailable}
	current := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)
	cache := NewStatusCache(resolver, func() time.Time { return current }, zap.NewNop())

	ctx := context.Background()
	cache.Get(ctx, 1)
	cache.Get(ctx, 1)
	assert.Equal(t, 1, resolver.calls)

	current = current.Add(2 * time.Hour)
	cache.Get(ctx, 1)
	assert.Equal(t, 2, resolver.calls, "date change clears the whole cache")
}

func TestStatusCacheDoesNotCacheErrors(t *testing.T) {
	resolver := &countingResolver{err: errors.New("connection refused")}
	cache := NewStatusCache(resolver, nil, zap.NewNop())

	ctx := context.Background()
	assert.Equal(t, entities.StatusError, cache.Get(ctx, 1))
	assert.Equal(t, entities.StatusError, cache.Get(ctx, 1))
	assert.Equal(t, 2, resolver.calls, "failed resolutions must be retried")

	resolver.err = nil
	resolver.status = entities.StatusAvailable
	assert.Equal(t, entities.StatusAvailable, cache.Get(ctx, 1))
}
