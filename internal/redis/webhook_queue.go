package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

const WebhookQueueKey = "webhooks:urgent_reports"

// WebhookQueue holds pending control-room notifications for urgent reports.
// Producers LPUSH, the sender BRPOPs, so delivery order is FIFO.
type WebhookQueue struct {
	client *goredis.Client
	key    string
}

func NewWebhookQueue(client *goredis.Client, key string) *WebhookQueue {
	return &WebhookQueue{client: client, key: key}
}

func (q *WebhookQueue) Enqueue(ctx context.Context, payload domain.WebhookPayload) error {
	const op = "redis.WebhookQueue.Enqueue"

	raw, err := json.Marshal(payload)
	if err != nil {
		return e.Wrap(op, err)
	}
	if err := q.client.LPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// BRPop waits up to timeout for the oldest payload. An empty queue yields
// e.ErrQueueEmpty; a payload that no longer decodes is consumed and reported
// as e.ErrInvalidInput so the sender can skip it.
func (q *WebhookQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error) {
	const op = "redis.WebhookQueue.BRPop"

	var payload domain.WebhookPayload

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	switch {
	case errors.Is(err, goredis.Nil):
		return payload, e.ErrQueueEmpty
	case err != nil:
		return payload, fmt.Errorf("%s: %w", op, err)
	case len(res) < 2:
		return payload, e.ErrQueueEmpty
	}

	if err := json.Unmarshal([]byte(res[1]), &payload); err != nil {
		return payload, fmt.Errorf("%s: decode: %w", op, e.ErrInvalidInput)
	}
	return payload, nil
}

// Len reports the backlog size for the admin stats endpoint.
func (q *WebhookQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
