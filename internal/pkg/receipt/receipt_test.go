// internal/pkg/receipt/receipt_test.go
package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/order"
)

func testBuilder() *Builder {
	return NewBuilder(config.StoreConfig{
		Name:   "Test Store",
		Footer: "Thank you!",
	})
}

func TestBuildCashReceipt(t *testing.T) {
	b := testBuilder()

	lines := []Line{{Name: "Coffee", Quantity: 2, Price: 15000, Subtotal: 30000}}
	r := b.Build("POS-20260831-00001", lines, 30000, order.PaymentMethodCash, 50000, 20000, false)

	assert.Equal(t, "Test Store", r.StoreName)
	assert.Equal(t, int64(30000), r.TotalAmount)
	assert.Equal(t, int64(50000), r.CashReceived)
	assert.Equal(t, int64(20000), r.ChangeAmount)
	assert.False(t, r.SavedOffline)
}

func TestTextRendering(t *testing.T) {
	b := testBuilder()

	lines := []Line{{Name: "Coffee", Quantity: 2, Price: 15000, Subtotal: 30000}}
	r := b.Build("POS-20260831-00001", lines, 30000, order.PaymentMethodCash, 50000, 20000, false)

	text := r.Text()
	assert.Contains(t, text, "Test Store")
	assert.Contains(t, text, "POS-20260831-00001")
	assert.Contains(t, text, "Coffee x2")
	assert.Contains(t, text, "TOTAL: 30,000")
	assert.Contains(t, text, "CASH:  50,000")
	assert.Contains(t, text, "CHANGE: 20,000")
	assert.Contains(t, text, "Thank you!")
	assert.NotContains(t, text, "SAVED OFFLINE")
}

func TestTextRenderingCardHidesCashLines(t *testing.T) {
	b := testBuilder()

	lines := []Line{{Name: "Coffee", Quantity: 1, Price: 15000, Subtotal: 15000}}
	r := b.Build("POS-20260831-00002", lines, 15000, order.PaymentMethodCard, 15000, 0, false)

	text := r.Text()
	assert.Contains(t, text, "PAID BY: CARD")
	assert.NotContains(t, text, "CHANGE:")
}

func TestTextRenderingOfflineMarker(t *testing.T) {
	b := testBuilder()

	r := b.Build("", []Line{{Name: "Coffee", Quantity: 1, Price: 15000, Subtotal: 15000}},
		15000, order.PaymentMethodCash, 15000, 0, true)

	assert.Contains(t, r.Text(), "* SAVED OFFLINE *")
}

func TestFromOrder(t *testing.T) {
	b := testBuilder()

	created := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	o := &order.Order{
		ID:            1,
		OrderNumber:   "POS-20260831-00001",
		TotalAmount:   30000,
		PaymentMethod: order.PaymentMethodCash,
		CashReceived:  50000,
		ChangeAmount:  20000,
		CreatedAt:     created,
		Items: []order.OrderItem{
			{Name: "Coffee", Quantity: 2, Price: 15000, Subtotal: 30000},
		},
	}

	r := b.FromOrder(o)

	require.Len(t, r.Lines, 1)
	assert.Equal(t, "Coffee", r.Lines[0].Name)
	assert.Equal(t, created, r.IssuedAt)
	assert.Equal(t, int64(20000), r.ChangeAmount)
	assert.False(t, r.SavedOffline)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "999", formatAmount(999))
	assert.Equal(t, "1,000", formatAmount(1000))
	assert.Equal(t, "30,000", formatAmount(30000))
	assert.Equal(t, "1,234,567", formatAmount(1234567))
	assert.Equal(t, "-15,000", formatAmount(-15000))
}
