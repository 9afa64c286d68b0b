// internal/domain/cart/store_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/product"
)

func coffee() product.Product {
	return product.Product{ID: 1, Name: "Coffee", Price: 15000, Stock: 100}
}

func tea() product.Product {
	return product.Product{ID: 2, Name: "Iced Tea", Price: 10000, Stock: 80}
}

func TestAddItemNewLine(t *testing.T) {
	store := NewStore()

	snap := store.AddItem("s1", coffee())

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 1, snap.Lines[0].Quantity)
	assert.Equal(t, int64(15000), snap.TotalAmount)
	assert.Equal(t, 1, snap.TotalItems)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.AddItem("s1", coffee())

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, int64(30000), snap.TotalAmount)
	assert.Equal(t, 2, snap.TotalItems)
}

func TestTotalsAcrossLines(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	store.AddItem("s1", coffee())
	store.AddItem("s1", tea())

	assert.Equal(t, int64(40000), store.TotalAmount("s1"))
	assert.Equal(t, 3, store.TotalItems("s1"))
}

func TestRemoveItem(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	store.AddItem("s1", tea())
	snap := store.RemoveItem("s1", coffee().ID)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, tea().ID, snap.Lines[0].Product.ID)
}

func TestRemoveItemUnknownIDIsNoop(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.RemoveItem("s1", 999)

	require.Len(t, snap.Lines, 1)
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.UpdateQuantity("s1", coffee().ID, 5)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 5, snap.Lines[0].Quantity)
	assert.Equal(t, int64(75000), snap.TotalAmount)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.UpdateQuantity("s1", coffee().ID, 0)

	assert.True(t, snap.Empty())
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.UpdateQuantity("s1", coffee().ID, -3)

	assert.True(t, snap.Empty())
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.UpdateQuantity("s1", 999, 4)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 1, snap.Lines[0].Quantity)
}

func TestClear(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	store.AddItem("s1", tea())
	snap := store.Clear("s1")

	assert.True(t, snap.Empty())
	assert.Equal(t, int64(0), snap.TotalAmount)
	assert.Equal(t, 0, snap.TotalItems)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	store.AddItem("s2", tea())

	assert.Equal(t, int64(15000), store.TotalAmount("s1"))
	assert.Equal(t, int64(10000), store.TotalAmount("s2"))

	store.Clear("s1")
	assert.Equal(t, int64(10000), store.TotalAmount("s2"))
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()

	store.AddItem("s1", coffee())
	snap := store.Get("s1")
	snap.Lines[0].Quantity = 42

	assert.Equal(t, 1, store.Get("s1").Lines[0].Quantity)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	store := NewStore()

	var events []Event
	unsubscribe := store.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	store.AddItem("s1", coffee())
	store.UpdateQuantity("s1", coffee().ID, 3)
	store.Clear("s1")

	require.Len(t, events, 3)
	assert.Equal(t, "s1", events[0].SessionID)
	assert.Equal(t, 3, events[1].Snapshot.Lines[0].Quantity)
	assert.True(t, events[2].Snapshot.Empty())

	unsubscribe()
	store.AddItem("s1", coffee())
	assert.Len(t, events, 3)
}

func TestGetDoesNotPublish(t *testing.T) {
	store := NewStore()

	calls := 0
	store.Subscribe(func(Event) { calls++ })

	store.Get("s1")
	store.TotalAmount("s1")

	assert.Equal(t, 0, calls)
}
