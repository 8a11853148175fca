// Package hub fans realtime events out to every connected client channel.
//
// Delivery is best effort: each event is serialized once and offered to every
// channel registered at the time of the call. A failing or panicking channel
// never affects the others and never surfaces to the publisher. Nothing is
// queued for clients that are not connected; they catch up through the HTTP API.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"borderwatch/internal/domain"
)

var (
	ErrChannelClosed = errors.New("channel closed")
	ErrChannelFull   = errors.New("channel send buffer full")
)

// Channel is one connected client.
type Channel interface {
	ID() string
	Send(msg []byte) error
	Close() error
}

type Delivery struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

type Hub struct {
	logger   *slog.Logger
	fanout   int
	now      func() time.Time
	mu       sync.RWMutex
	channels map[string]Channel

	broadcasts atomic.Int64
	delivered  atomic.Int64
	failed     atomic.Int64
	dropped    atomic.Int64
}

type Option func(*Hub)

// WithFanoutLimit bounds how many sends run at once during a broadcast.
func WithFanoutLimit(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.fanout = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Hub) { h.now = now }
}

func New(logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		logger:   logger.With(slog.String("component", "hub")),
		fanout:   32,
		now:      time.Now,
		channels: make(map[string]Channel),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Register(ch Channel) {
	h.mu.Lock()
	_, exists := h.channels[ch.ID()]
	h.channels[ch.ID()] = ch
	n := len(h.channels)
	h.mu.Unlock()

	if !exists {
		h.logger.Debug("channel registered", slog.String("channel_id", ch.ID()), slog.Int("channels", n))
	}
}

func (h *Hub) Unregister(ch Channel) {
	h.mu.Lock()
	_, exists := h.channels[ch.ID()]
	delete(h.channels, ch.ID())
	n := len(h.channels)
	h.mu.Unlock()

	if exists {
		h.logger.Debug("channel unregistered", slog.String("channel_id", ch.ID()), slog.Int("channels", n))
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// Publish wraps payload into an event stamped with the hub clock and broadcasts it.
func (h *Hub) Publish(ctx context.Context, payload domain.EventPayload) Delivery {
	return h.Broadcast(ctx, domain.NewEvent(payload, h.now()))
}

func (h *Hub) Broadcast(ctx context.Context, ev domain.BroadcastEvent) Delivery {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("event marshal failed", slog.String("type", string(ev.Type)), slog.Any("error", err))
		return Delivery{}
	}
	h.broadcasts.Add(1)

	snapshot := h.snapshot()
	if len(snapshot) == 0 {
		h.dropped.Add(1)
		h.logger.Debug("no channels connected, event dropped", slog.String("type", string(ev.Type)))
		return Delivery{}
	}

	var delivered, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(h.fanout)

	for _, ch := range snapshot {
		ch := ch
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			if err := h.deliver(ch, msg); err != nil {
				failed.Add(1)
				h.logger.Warn("delivery failed",
					slog.String("channel_id", ch.ID()),
					slog.String("type", string(ev.Type)),
					slog.Any("error", err),
				)
				if errors.Is(err, ErrChannelClosed) {
					h.Unregister(ch)
				}
				return nil
			}
			delivered.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	d := Delivery{
		Attempted: len(snapshot),
		Delivered: int(delivered.Load()),
		Failed:    int(failed.Load()),
	}
	h.delivered.Add(int64(d.Delivered))
	h.failed.Add(int64(d.Failed))

	h.logger.Debug("broadcast done",
		slog.String("type", string(ev.Type)),
		slog.Int("attempted", d.Attempted),
		slog.Int("delivered", d.Delivered),
		slog.Int("failed", d.Failed),
	)
	return d
}

func (h *Hub) deliver(ch Channel, msg []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send panicked: %v", r)
		}
	}()
	return ch.Send(msg)
}

func (h *Hub) snapshot() []Channel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Channel, 0, len(h.channels))
	for _, ch := range h.channels {
		out = append(out, ch)
	}
	return out
}

func (h *Hub) Stats() domain.HubStats {
	return domain.HubStats{
		Channels:      h.Len(),
		Broadcasts:    h.broadcasts.Load(),
		Delivered:     h.delivered.Load(),
		Failed:        h.failed.Load(),
		DroppedEvents: h.dropped.Load(),
	}
}

// CloseAll closes and forgets every channel. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	channels := h.channels
	h.channels = make(map[string]Channel)
	h.mu.Unlock()

	for _, ch := range channels {
		if err := ch.Close(); err != nil {
			h.logger.Warn("channel close failed", slog.String("channel_id", ch.ID()), slog.Any("error", err))
		}
	}
	h.logger.Info("all channels closed", slog.Int("count", len(channels)))
}
