package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borderwatch/internal/config"
	"borderwatch/internal/domain"
	"borderwatch/internal/redis"
	"borderwatch/pkg/e"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAlertCache_MissSetGetInvalidate(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	cache := redis.NewAlertCache(client, time.Minute)

	_, ok, err := cache.GetActive(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	alerts := []domain.Alert{{
		ID:        uuid.New(),
		Title:     "Shelling near Uri",
		Severity:  domain.SeverityEmergency,
		IsActive:  true,
		Source:    domain.AlertSourceInternal,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, cache.SetActive(ctx, alerts))

	got, ok, err := cache.GetActive(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, alerts, got)
	assert.Equal(t, time.Minute, mr.TTL("alerts:active"))

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.GetActive(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlertCache_EmptyListIsAHit(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()
	cache := redis.NewAlertCache(client, time.Minute)

	require.NoError(t, cache.SetActive(ctx, nil))

	got, ok, err := cache.GetActive(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestAlertCache_Expires(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	cache := redis.NewAlertCache(client, time.Second)

	require.NoError(t, cache.SetActive(ctx, []domain.Alert{}))
	mr.FastForward(2 * time.Second)

	_, ok, err := cache.GetActive(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlertCache_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set("alerts:active", "{not json"))

	_, _, err := redis.NewAlertCache(client, time.Minute).GetActive(context.Background())
	assert.Error(t, err)
}

func TestWebhookQueue_FIFO(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()
	q := redis.NewWebhookQueue(client, redis.WebhookQueueKey)

	first := domain.WebhookPayload{ReportID: uuid.New(), Urgency: domain.UrgencyUrgent, Category: "infiltration"}
	second := domain.WebhookPayload{ReportID: uuid.New(), Urgency: domain.UrgencyHigh, Category: "drone"}
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, first.ReportID, got.ReportID)

	got, err = q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second.ReportID, got.ReportID)
}

func TestWebhookQueue_EmptyTimesOut(t *testing.T) {
	_, client := newClient(t)
	q := redis.NewWebhookQueue(client, redis.WebhookQueueKey)

	_, err := q.BRPop(context.Background(), 100*time.Millisecond)
	assert.ErrorIs(t, err, e.ErrQueueEmpty)
}

func TestWebhookQueue_MalformedPayloadConsumed(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	q := redis.NewWebhookQueue(client, redis.WebhookQueueKey)

	_, err := mr.Lpush(redis.WebhookQueueKey, "{broken")
	require.NoError(t, err)

	_, err = q.BRPop(ctx, time.Second)
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r, err := redis.NewRedis(context.Background(), config.RedisConfig{
		Addr:           mr.Addr(),
		PoolSize:       2,
		ConnectTimeout: time.Second,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	assert.NoError(t, r.Ping(context.Background()))
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := redis.NewRedis(context.Background(), config.RedisConfig{
		Addr:           addr,
		ConnectTimeout: 200 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
