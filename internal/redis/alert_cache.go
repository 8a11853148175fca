package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"borderwatch/internal/domain"
)

const activeAlertsKey = "alerts:active"

// AlertCache keeps the active persisted alerts as one JSON document.
type AlertCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewAlertCache(client *goredis.Client, ttl time.Duration) *AlertCache {
	return &AlertCache{
		client: client,
		key:    activeAlertsKey,
		ttl:    ttl,
	}
}

// GetActive returns ok=false on a cache miss.
func (c *AlertCache) GetActive(ctx context.Context) ([]domain.Alert, bool, error) {
	const op = "redis.AlertCache.GetActive"

	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var alerts []domain.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, false, fmt.Errorf("%s: decode: %w", op, err)
	}
	return alerts, true, nil
}

func (c *AlertCache) SetActive(ctx context.Context, alerts []domain.Alert) error {
	const op = "redis.AlertCache.SetActive"

	if alerts == nil {
		alerts = []domain.Alert{}
	}
	b, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}
	if err := c.client.Set(ctx, c.key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *AlertCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis.AlertCache.Invalidate: %w", err)
	}
	return nil
}
