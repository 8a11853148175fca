// Package location keeps the latest position reported by each client session.
package location

import (
	"sort"
	"sync"
	"time"

	"borderwatch/internal/domain"
)

// Cache holds one sample per session, last write wins. Entries live until the
// process exits unless a TTL is configured and Sweep is called.
type Cache struct {
	mu      sync.RWMutex
	samples map[string]domain.LocationSample
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		samples: make(map[string]domain.LocationSample),
		ttl:     ttl,
	}
}

func (c *Cache) Update(sessionID string, sample domain.LocationSample) {
	sample.SessionID = sessionID
	c.mu.Lock()
	c.samples[sessionID] = sample
	c.mu.Unlock()
}

func (c *Cache) Get(sessionID string) (domain.LocationSample, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.samples[sessionID]
	return s, ok
}

// All returns a snapshot ordered by session id.
func (c *Cache) All() []domain.LocationSample {
	c.mu.RLock()
	out := make([]domain.LocationSample, 0, len(c.samples))
	for _, s := range c.samples {
		out = append(out, s)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}

// Sweep drops samples older than the TTL and returns how many were removed.
// It is a no-op when the cache was built without a TTL.
func (c *Cache) Sweep(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, s := range c.samples {
		if s.Timestamp.Before(cutoff) {
			delete(c.samples, id)
			removed++
		}
	}
	return removed
}
