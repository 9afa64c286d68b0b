// internal/pkg/receipt/receipt.go
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/order"
)

// Line is one item row on a receipt
type Line struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Subtotal int64  `json:"subtotal"`
}

// Receipt is the printable summary of a committed (or offline-queued) sale
type Receipt struct {
	StoreName     string              `json:"store_name"`
	StoreAddress  string              `json:"store_address,omitempty"`
	StorePhone    string              `json:"store_phone,omitempty"`
	OrderNumber   string              `json:"order_number,omitempty"`
	IssuedAt      time.Time           `json:"issued_at"`
	Lines         []Line              `json:"lines"`
	TotalAmount   int64               `json:"total_amount"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	CashReceived  int64               `json:"cash_received"`
	ChangeAmount  int64               `json:"change_amount"`
	SavedOffline  bool                `json:"saved_offline"`
	Footer        string              `json:"footer,omitempty"`
}

// Builder stamps receipts with the store identity from config
type Builder struct {
	store config.StoreConfig
}

// NewBuilder creates a receipt builder
func NewBuilder(store config.StoreConfig) *Builder {
	return &Builder{store: store}
}

// Build assembles a receipt for the given sale data
func (b *Builder) Build(orderNumber string, lines []Line, total int64, method order.PaymentMethod, received, change int64, savedOffline bool) *Receipt {
	return &Receipt{
		StoreName:     b.store.Name,
		StoreAddress:  b.store.Address,
		StorePhone:    b.store.Phone,
		OrderNumber:   orderNumber,
		IssuedAt:      time.Now().UTC(),
		Lines:         lines,
		TotalAmount:   total,
		PaymentMethod: method,
		CashReceived:  received,
		ChangeAmount:  change,
		SavedOffline:  savedOffline,
		Footer:        b.store.Footer,
	}
}

// FromOrder assembles a receipt for a previously committed order
func (b *Builder) FromOrder(o *order.Order) *Receipt {
	lines := make([]Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, Line{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal,
		})
	}
	r := b.Build(o.OrderNumber, lines, o.TotalAmount, o.PaymentMethod, o.CashReceived, o.ChangeAmount, false)
	r.IssuedAt = o.CreatedAt
	return r
}

const divider = "--------------------------------"

// Text renders the receipt as a monospace slip suitable for a thermal printer
func (r *Receipt) Text() string {
	var sb strings.Builder

	sb.WriteString(center(r.StoreName) + "\n")
	if r.StoreAddress != "" {
		sb.WriteString(center(r.StoreAddress) + "\n")
	}
	if r.StorePhone != "" {
		sb.WriteString(center(r.StorePhone) + "\n")
	}
	sb.WriteString(center(r.IssuedAt.Format("2006-01-02 15:04:05")) + "\n")
	if r.OrderNumber != "" {
		sb.WriteString(center(r.OrderNumber) + "\n")
	}
	sb.WriteString(divider + "\n")

	for _, line := range r.Lines {
		sb.WriteString(fmt.Sprintf("%s x%d\n", line.Name, line.Quantity))
		sb.WriteString(fmt.Sprintf("  @ %s = %s\n", formatAmount(line.Price), formatAmount(line.Subtotal)))
	}

	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("TOTAL: %s\n", formatAmount(r.TotalAmount)))

	if r.PaymentMethod == order.PaymentMethodCash {
		sb.WriteString(fmt.Sprintf("CASH:  %s\n", formatAmount(r.CashReceived)))
		sb.WriteString(fmt.Sprintf("CHANGE: %s\n", formatAmount(r.ChangeAmount)))
	} else {
		sb.WriteString(fmt.Sprintf("PAID BY: %s\n", r.PaymentMethod))
	}

	if r.SavedOffline {
		sb.WriteString("\n" + center("* SAVED OFFLINE *") + "\n")
	}
	if r.Footer != "" {
		sb.WriteString("\n" + center(r.Footer) + "\n")
	}

	return sb.String()
}

func center(s string) string {
	width := len(divider)
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func formatAmount(v int64) string {
	// Thousands-separated whole units, e.g. 30000 -> "30,000"
	s := fmt.Sprintf("%d", v)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}
