package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/utils"
)

// cacheTTL bounds how stale a cached calendar read may be. Mutations
// invalidate the provider's entries eagerly; the TTL is the backstop.
const cacheTTL = 60 * time.Second

// ViewCache caches materialized calendar reads. A nil cache disables caching.
type ViewCache interface {
	GetView(ctx context.Context, key string) (*models.CalendarView, bool)
	SetView(ctx context.Context, key string, view *models.CalendarView)
	GetSlots(ctx context.Context, key string) ([]models.Slot, bool)
	SetSlots(ctx context.Context, key string, slots []models.Slot)
	InvalidateProvider(ctx context.Context, providerID string)
}

// RedisViewCache is the production ViewCache backed by the shared cache DB.
type RedisViewCache struct {
	Client *redis.Client
}

func viewKey(providerID, startDate, endDate, serviceID, view string) string {
	return fmt.Sprintf("calendar:%s:view:%s:%s:%s:%s", providerID, startDate, endDate, serviceID, view)
}

func slotsKey(providerID, serviceID, date string, duration int) string {
	return fmt.Sprintf("calendar:%s:slots:%s:%s:%d", providerID, serviceID, date, duration)
}

func (c *RedisViewCache) GetView(ctx context.Context, key string) (*models.CalendarView, bool) {
	raw, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var view models.CalendarView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, false
	}
	return &view, true
}

func (c *RedisViewCache) SetView(ctx context.Context, key string, view *models.CalendarView) {
	b, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, b, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache calendar view", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisViewCache) GetSlots(ctx context.Context, key string) ([]models.Slot, bool) {
	raw, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *RedisViewCache) SetSlots(ctx context.Context, key string, slots []models.Slot) {
	b, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, b, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache slots", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateProvider drops every cached read for the provider.
func (c *RedisViewCache) InvalidateProvider(ctx context.Context, providerID string) {
	pattern := fmt.Sprintf("calendar:%s:*", providerID)
	iter := c.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			utils.GetLogger().Warn("Failed to invalidate cache entry", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("Cache invalidation scan failed", zap.String("provider", providerID), zap.Error(err))
	}
}
