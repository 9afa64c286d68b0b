// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/offline"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/pkg/notify"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no lines
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientCash is returned when cash tendered is below the total
	ErrInsufficientCash = errors.New("cash received is less than the total amount")
	// ErrInvalidPaymentMethod is returned for unknown payment methods
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// OrderStore is the backend write surface for order headers and line items
type OrderStore interface {
	InsertOrder(ctx context.Context, o *order.Order) (uint, error)
	InsertOrderItems(ctx context.Context, orderID uint, items []order.OrderItem) error
}

// StockStore is the backend stock-decrement surface
type StockStore interface {
	DecrementStock(ctx context.Context, productID uint, quantity int) error
}

// ProductStore resolves product ids to current catalog state, used when a
// queued transaction is replayed.
type ProductStore interface {
	GetProduct(ctx context.Context, id uint) (*product.Product, error)
}

// Queue is the durable local destination for offline checkouts
type Queue interface {
	Enqueue(ctx context.Context, tx *offline.Transaction) (int64, error)
}

// Connectivity exposes the terminal's online flag
type Connectivity interface {
	Online() bool
}

// Service turns a cart snapshot plus payment input into exactly one committed
// transaction effect: a remote backend write when online, a queued local
// record when offline.
type Service struct {
	carts    *cart.Store
	orders   OrderStore
	stock    StockStore
	products ProductStore
	queue    Queue
	conn     Connectivity
	notifier notify.Notifier
	receipts *receipt.Builder
	logger   *logrus.Logger

	commitTimeout time.Duration
}

// NewService creates a new checkout service
func NewService(
	carts *cart.Store,
	orders OrderStore,
	stock StockStore,
	products ProductStore,
	queue Queue,
	conn Connectivity,
	notifier notify.Notifier,
	receipts *receipt.Builder,
	logger *logrus.Logger,
	cfg *config.Config,
) *Service {
	return &Service{
		carts:         carts,
		orders:        orders,
		stock:         stock,
		products:      products,
		queue:         queue,
		conn:          conn,
		notifier:      notifier,
		receipts:      receipts,
		logger:        logger,
		commitTimeout: cfg.Checkout.CommitTimeout,
	}
}

// PaymentRequest is the cashier's payment input
type PaymentRequest struct {
	PaymentMethod order.PaymentMethod `json:"payment_method" binding:"required"`
	CashReceived  int64               `json:"cash_received"`
}

// Result reports the single effect a checkout produced
type Result struct {
	OrderID      uint             `json:"order_id,omitempty"`
	OrderNumber  string           `json:"order_number,omitempty"`
	LocalID      int64            `json:"local_id,omitempty"`
	SavedOffline bool             `json:"saved_offline"`
	Receipt      *receipt.Receipt `json:"receipt"`
}

// ProcessPayment validates the payment, commits remotely when online or
// queues locally when offline, and clears the cart only after the effect is
// durably recorded. On any failure the cart is left untouched so the cashier
// can retry.
func (s *Service) ProcessPayment(ctx context.Context, sessionID, cashierID string, req *PaymentRequest) (*Result, error) {
	snapshot := s.carts.Get(sessionID)
	if snapshot.Empty() {
		s.notifier.Notify("Cart is empty", notify.LevelError)
		return nil, ErrEmptyCart
	}

	if !req.PaymentMethod.Valid() {
		s.notifier.Notify("Invalid payment method", notify.LevelError)
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	total := snapshot.TotalAmount
	received, change := paymentAmounts(req.PaymentMethod, req.CashReceived, total)

	if req.PaymentMethod == order.PaymentMethodCash && req.CashReceived < total {
		s.notifier.Notify("Cash received is not enough", notify.LevelError)
		return nil, ErrInsufficientCash
	}

	if !s.conn.Online() {
		return s.processOffline(ctx, snapshot, cashierID, req.PaymentMethod, received, change)
	}

	lines := commitLinesFromSnapshot(snapshot)
	o, err := s.commitRemote(ctx, lines, cashierID, req.PaymentMethod, received, change, false)
	if err != nil {
		s.notifier.Notify("Failed to process payment", notify.LevelError)
		return nil, err
	}

	s.carts.Clear(sessionID)

	rcpt := s.receipts.Build(o.OrderNumber, receiptLines(lines), total, req.PaymentMethod, received, change, false)
	s.notifier.Notify("Transaction completed", notify.LevelSuccess)

	return &Result{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Receipt:     rcpt,
	}, nil
}

// CommitPending replays a queued offline transaction against the backend
// using the same commit sequence as the online path. Lines are priced at the
// current catalog price; the tendered amount of an offline cash sale is not
// recoverable, so received equals the total and change is zero.
func (s *Service) CommitPending(ctx context.Context, tx *offline.Transaction) error {
	lines := make([]commitLine, 0, len(tx.Lines))
	var total int64
	for _, l := range tx.Lines {
		prod, err := s.products.GetProduct(ctx, l.ProductID)
		if err != nil {
			return fmt.Errorf("failed to resolve product %d: %w", l.ProductID, err)
		}
		lines = append(lines, commitLine{
			ProductID: prod.ID,
			Name:      prod.Name,
			Quantity:  l.Quantity,
			UnitPrice: prod.Price,
		})
		total += prod.Price * int64(l.Quantity)
	}

	_, err := s.commitRemote(ctx, lines, tx.CashierID, tx.PaymentMethod, total, 0, true)
	return err
}

func (s *Service) processOffline(ctx context.Context, snapshot cart.Snapshot, cashierID string, method order.PaymentMethod, received, change int64) (*Result, error) {
	tx := &offline.Transaction{
		CashierID:     cashierID,
		PaymentMethod: method,
		Lines:         make([]offline.TransactionLine, 0, len(snapshot.Lines)),
		CreatedAt:     time.Now().UTC(),
	}
	for _, l := range snapshot.Lines {
		tx.Lines = append(tx.Lines, offline.TransactionLine{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
		})
	}

	localID, err := s.queue.Enqueue(ctx, tx)
	if err != nil {
		// Local storage itself is unavailable; the cart stays intact.
		s.notifier.Notify("Failed to save transaction offline", notify.LevelError)
		return nil, fmt.Errorf("offline enqueue failed: %w", err)
	}

	s.carts.Clear(snapshot.SessionID)

	lines := commitLinesFromSnapshot(snapshot)
	rcpt := s.receipts.Build("", receiptLines(lines), snapshot.TotalAmount, method, received, change, true)
	s.notifier.Notify("Transaction saved offline", notify.LevelInfo)

	return &Result{
		LocalID:      localID,
		SavedOffline: true,
		Receipt:      rcpt,
	}, nil
}

// commitRemote runs the three-step backend write: order header, line items,
// then one stock decrement per line. Steps are strictly sequential; a failure
// after the header is persisted leaves a dangling order that is logged for
// reconciliation, not rolled back.
func (s *Service) commitRemote(ctx context.Context, lines []commitLine, cashierID string, method order.PaymentMethod, received, change int64, fromOffline bool) (*order.Order, error) {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * int64(l.Quantity)
	}

	o := &order.Order{
		CashierID:         cashierID,
		Status:            order.OrderStatusCompleted,
		TotalAmount:       total,
		PaymentMethod:     method,
		CashReceived:      received,
		ChangeAmount:      change,
		SyncedFromOffline: fromOffline,
	}

	stepCtx, cancel := context.WithTimeout(ctx, s.commitTimeout)
	orderID, err := s.orders.InsertOrder(stepCtx, o)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	items := make([]order.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
			Subtotal:  l.UnitPrice * int64(l.Quantity),
		})
	}

	stepCtx, cancel = context.WithTimeout(ctx, s.commitTimeout)
	err = s.orders.InsertOrderItems(stepCtx, orderID, items)
	cancel()
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"order_id": orderID,
		}).Warn("order header persisted but item insert failed, needs reconciliation")
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}

	for _, l := range lines {
		stepCtx, cancel = context.WithTimeout(ctx, s.commitTimeout)
		err = s.stock.DecrementStock(stepCtx, l.ProductID, l.Quantity)
		cancel()
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"order_id":   orderID,
				"product_id": l.ProductID,
			}).Warn("order persisted but stock decrement failed, needs reconciliation")
			return nil, fmt.Errorf("failed to decrement stock for product %d: %w", l.ProductID, err)
		}
	}

	return o, nil
}

type commitLine struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice int64
}

func commitLinesFromSnapshot(snapshot cart.Snapshot) []commitLine {
	lines := make([]commitLine, 0, len(snapshot.Lines))
	for _, l := range snapshot.Lines {
		lines = append(lines, commitLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}
	return lines
}

func receiptLines(lines []commitLine) []receipt.Line {
	out := make([]receipt.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, receipt.Line{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Subtotal: l.UnitPrice * int64(l.Quantity),
		})
	}
	return out
}

// paymentAmounts mirrors the cashier slip rules: for cash, record what was
// tendered and the change (never negative); for card and digital payments the
// received amount equals the total.
func paymentAmounts(method order.PaymentMethod, cashReceived, total int64) (received, change int64) {
	if method == order.PaymentMethodCash {
		change = cashReceived - total
		if change < 0 {
			change = 0
		}
		return cashReceived, change
	}
	return total, 0
}
