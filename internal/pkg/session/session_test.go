// internal/pkg/session/session_test.go
package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/pkg/capability"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestGetMissingSubject(t *testing.T) {
	cache := NewCache(time.Minute, nil)

	_, ok := cache.Get("op1")
	assert.False(t, ok)
}

func TestPutAndGet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	cache := NewCache(time.Minute, clock.Now)

	cache.Put("op1", "cashier", capability.ForRole("cashier"))

	entry, ok := cache.Get("op1")
	require.True(t, ok)
	assert.Equal(t, "op1", entry.Subject)
	assert.Equal(t, "cashier", entry.Role)
	assert.True(t, entry.Capabilities.Has(capability.CheckoutProcess))
	assert.False(t, entry.Capabilities.Has(capability.AdminManage))
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	cache := NewCache(time.Minute, clock.Now)

	cache.Put("op1", "admin", capability.ForRole("admin"))

	clock.Advance(59 * time.Second)
	_, ok := cache.Get("op1")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = cache.Get("op1")
	assert.False(t, ok)

	// Expired entries are dropped, not resurrected by a clock rollback.
	clock.Advance(-time.Hour)
	_, ok = cache.Get("op1")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	cache := NewCache(time.Minute, nil)

	cache.Put("op1", "cashier", capability.ForRole("cashier"))
	cache.Invalidate("op1")

	_, ok := cache.Get("op1")
	assert.False(t, ok)
}

func TestInvalidateAll(t *testing.T) {
	cache := NewCache(time.Minute, nil)

	cache.Put("op1", "cashier", capability.ForRole("cashier"))
	cache.Put("op2", "admin", capability.ForRole("admin"))
	cache.InvalidateAll()

	_, ok := cache.Get("op1")
	assert.False(t, ok)
	_, ok = cache.Get("op2")
	assert.False(t, ok)
}

func TestPutOverwritesRole(t *testing.T) {
	cache := NewCache(time.Minute, nil)

	cache.Put("op1", "cashier", capability.ForRole("cashier"))
	cache.Put("op1", "supervisor", capability.ForRole("supervisor"))

	entry, ok := cache.Get("op1")
	require.True(t, ok)
	assert.Equal(t, "supervisor", entry.Role)
	assert.True(t, entry.Capabilities.Has(capability.ReportsRead))
}
