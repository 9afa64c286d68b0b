// internal/pkg/session/session.go
package session

import (
	"sync"
	"time"

	"github.com/your-org/pos-backend/internal/pkg/capability"
)

// Clock returns the current time; injected so expiry is testable
type Clock func() time.Time

// Entry is a cached view of one authenticated operator's session state
type Entry struct {
	Subject      string
	Role         string
	Capabilities capability.Set
	cachedAt     time.Time
}

// Cache holds resolved session state with TTL expiry. It replaces the
// module-level role cache of the old implementation: an explicit object with
// an injected clock and an explicit invalidation call, passed to whoever
// needs session state.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     Clock
}

// NewCache creates a cache with the given TTL and clock
func NewCache(ttl time.Duration, now Clock) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached entry for the subject if present and not expired
func (c *Cache) Get(subject string) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[subject]
	c.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(entry.cachedAt) > c.ttl {
		c.Invalidate(subject)
		return Entry{}, false
	}
	return entry, true
}

// Put stores the session state for a subject
func (c *Cache) Put(subject, role string, caps capability.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[subject] = Entry{
		Subject:      subject,
		Role:         role,
		Capabilities: caps,
		cachedAt:     c.now(),
	}
}

// Invalidate removes one subject's cached state
func (c *Cache) Invalidate(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, subject)
}

// InvalidateAll clears the cache, e.g. after a role change in the admin panel
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}
