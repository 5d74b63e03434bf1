package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"medequip-system/internal/entities"
	"medequip-system/pkg/utils"
)

// StatusCacheInterface memoizes resolved device statuses for the current
// calendar day. Mutating services must call Invalidate for every device whose
// status they may have changed, before reporting success.
type StatusCacheInterface interface {
	Get(ctx context.Context, deviceID uint64) entities.DeviceStatus
	Invalidate(deviceID uint64)
	InvalidateAll()
}

type StatusCache struct {
	mu        sync.RWMutex
	entries   map[uint64]entities.DeviceStatus
	resetDate time.Time

	resolver StatusResolverInterface
	clock    func() time.Time
	logger   *zap.Logger
}

func NewStatusCache(resolver StatusResolverInterface, clock func() time.Time, logger *zap.Logger) StatusCacheInterface {
	if clock == nil {
		clock = time.Now
	}
	return &StatusCache{
		entries:   make(map[uint64]entities.DeviceStatus),
		resetDate: clock(),
		resolver:  resolver,
		clock:     clock,
		logger:    logger,
	}
}

// Get returns the memoized status for the device, resolving and storing it on
// a miss. The whole map is cleared lazily when the calendar date has moved on
// since the last reset. A store failure during resolution is logged and
// surfaced as the Error label without being cached, so the next lookup retries.
func (c *StatusCache) Get(ctx context.Context, deviceID uint64) entities.DeviceStatus {
	now := c.clock()

	c.mu.Lock()
	if !utils.SameCalendarDay(c.resetDate, now) {
		c.entries = make(map[uint64]entities.DeviceStatus)
		c.resetDate = now
	}
	if status, ok := c.entries[deviceID]; ok {
		c.mu.Unlock()
		return status
	}
	c.mu.Unlock()

	status, err := c.resolver.Resolve(ctx, deviceID, now)
	if err != nil {
		c.logger.Error("failed to resolve device status",
			zap.Uint64("deviceID", deviceID), zap.Error(err))
		return entities.StatusError
	}

	c.mu.Lock()
	// Concurrent fills for the same device resolve identically, so the last
	// writer winning is harmless.
	if utils.SameCalendarDay(c.resetDate, now) {
		c.entries[deviceID] = status
	}
	c.mu.Unlock()

	return status
}

func (c *StatusCache) Invalidate(deviceID uint64) {
	c.mu.Lock()
	delete(c.entries, deviceID)
	c.mu.Unlock()
}

func (c *StatusCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[uint64]entities.DeviceStatus)
	c.mu.Unlock()
}
