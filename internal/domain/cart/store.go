// internal/domain/cart/store.go
package cart

import (
	"sync"
	"time"

	"github.com/your-org/pos-backend/internal/domain/product"
)

// Line is one product and its requested quantity within an in-progress sale
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns unit price times quantity for this line
func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Snapshot is an immutable copy of one terminal session's cart
type Snapshot struct {
	SessionID   string    `json:"session_id"`
	Lines       []Line    `json:"lines"`
	TotalAmount int64     `json:"total_amount"`
	TotalItems  int       `json:"total_items"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Empty reports whether the cart holds no lines
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// Event is emitted to subscribers after every mutation
type Event struct {
	SessionID string
	Snapshot  Snapshot
}

// Store holds the in-progress carts for all terminal sessions. Mutations are
// pure state transitions: they never fail, never touch the network, and
// return the resulting snapshot. Subscribers receive a change event after
// each mutation; there is no global singleton, consumers hold a *Store.
//
// The store does not enforce the stock ceiling on AddItem; the cart handler
// (standing in for the UI that disables the add button) checks stock before
// calling in.
type Store struct {
	mu      sync.RWMutex
	carts   map[string][]Line
	subs    map[int]func(Event)
	nextSub int
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{
		carts: make(map[string][]Line),
		subs:  make(map[int]func(Event)),
	}
}

// Subscribe registers a callback invoked after every mutation. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// AddItem adds one unit of the product to the session's cart, incrementing
// the existing line if the product is already present.
func (s *Store) AddItem(sessionID string, p product.Product) Snapshot {
	s.mu.Lock()
	lines := s.carts[sessionID]
	found := false
	for i := range lines {
		if lines[i].Product.ID == p.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{Product: p, Quantity: 1})
	}
	s.carts[sessionID] = lines
	snap := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	s.publish(snap)
	return snap
}

// RemoveItem deletes the line for the product id; no-op if absent
func (s *Store) RemoveItem(sessionID string, productID uint) Snapshot {
	s.mu.Lock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	s.carts[sessionID] = lines
	snap := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	s.publish(snap)
	return snap
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less removes
// the line; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(sessionID string, productID uint, quantity int) Snapshot {
	if quantity <= 0 {
		return s.RemoveItem(sessionID, productID)
	}

	s.mu.Lock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = quantity
			break
		}
	}
	s.carts[sessionID] = lines
	snap := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	s.publish(snap)
	return snap
}

// Clear empties the session's cart
func (s *Store) Clear(sessionID string) Snapshot {
	s.mu.Lock()
	delete(s.carts, sessionID)
	snap := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	s.publish(snap)
	return snap
}

// Get returns the current snapshot without mutating anything
func (s *Store) Get(sessionID string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(sessionID)
}

// TotalAmount returns the sum of price times quantity over all lines
func (s *Store) TotalAmount(sessionID string) int64 {
	return s.Get(sessionID).TotalAmount
}

// TotalItems returns the sum of quantities over all lines
func (s *Store) TotalItems(sessionID string) int {
	return s.Get(sessionID).TotalItems
}

func (s *Store) snapshotLocked(sessionID string) Snapshot {
	lines := s.carts[sessionID]
	copied := make([]Line, len(lines))
	copy(copied, lines)

	var total int64
	items := 0
	for _, l := range copied {
		total += l.Subtotal()
		items += l.Quantity
	}

	return Snapshot{
		SessionID:   sessionID,
		Lines:       copied,
		TotalAmount: total,
		TotalItems:  items,
		UpdatedAt:   time.Now().UTC(),
	}
}

func (s *Store) publish(snap Snapshot) {
	s.mu.RLock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	ev := Event{SessionID: snap.SessionID, Snapshot: snap}
	for _, fn := range subs {
		fn(ev)
	}
}
