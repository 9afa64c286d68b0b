// internal/domain/checkout/mocks_test.go
package checkout

import (
	"context"
	"errors"

	"github.com/your-org/pos-backend/internal/domain/offline"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/pkg/notify"
)

var errBackendDown = errors.New("backend unreachable")

type mockOrderStore struct {
	nextID      uint
	orders      []*order.Order
	items       map[uint][]order.OrderItem
	failInsert  bool
	failItems   bool
	insertCalls int
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{items: make(map[uint][]order.OrderItem)}
}

func (m *mockOrderStore) InsertOrder(ctx context.Context, o *order.Order) (uint, error) {
	m.insertCalls++
	if m.failInsert {
		return 0, errBackendDown
	}
	m.nextID++
	o.ID = m.nextID
	o.OrderNumber = o.GenerateOrderNumber()
	m.orders = append(m.orders, o)
	return o.ID, nil
}

func (m *mockOrderStore) InsertOrderItems(ctx context.Context, orderID uint, items []order.OrderItem) error {
	if m.failItems {
		return errBackendDown
	}
	m.items[orderID] = items
	return nil
}

type stockDecrement struct {
	ProductID uint
	Quantity  int
}

type mockStockStore struct {
	decrements []stockDecrement
	failFor    map[uint]error
}

func newMockStockStore() *mockStockStore {
	return &mockStockStore{failFor: make(map[uint]error)}
}

func (m *mockStockStore) DecrementStock(ctx context.Context, productID uint, quantity int) error {
	if err, ok := m.failFor[productID]; ok {
		return err
	}
	m.decrements = append(m.decrements, stockDecrement{ProductID: productID, Quantity: quantity})
	return nil
}

type mockProductStore struct {
	products map[uint]product.Product
}

func newMockProductStore(products ...product.Product) *mockProductStore {
	m := &mockProductStore{products: make(map[uint]product.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductStore) GetProduct(ctx context.Context, id uint) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

type mockQueue struct {
	nextID   int64
	enqueued []*offline.Transaction
	fail     bool
}

func (m *mockQueue) Enqueue(ctx context.Context, tx *offline.Transaction) (int64, error) {
	if m.fail {
		return 0, errors.New("local storage unavailable")
	}
	m.nextID++
	tx.LocalID = m.nextID
	m.enqueued = append(m.enqueued, tx)
	return m.nextID, nil
}

type mockConn struct {
	online bool
}

func (m *mockConn) Online() bool { return m.online }

type notification struct {
	Message string
	Level   notify.Level
}

type mockNotifier struct {
	notifications []notification
}

func (m *mockNotifier) Notify(message string, level notify.Level) {
	m.notifications = append(m.notifications, notification{Message: message, Level: level})
}

func (m *mockNotifier) levels() []notify.Level {
	out := make([]notify.Level, 0, len(m.notifications))
	for _, n := range m.notifications {
		out = append(out, n.Level)
	}
	return out
}
