package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

// StockKeeper applies the stock side effect of a sale
type StockKeeper interface {
	ApplySale(items []models.OrderItem) []models.StockChange
}

// Ledger owns the set of orders. New orders are placed at the front.
type Ledger struct {
	mu      sync.RWMutex
	orders  []models.Order
	stock   StockKeeper
	nextSeq int
	now     func() time.Time
}

// New creates a ledger seeded with orders. Order numbers continue after the
// highest ORD-<n> found in the seed. A nil clock defaults to time.Now.
func New(seed []models.Order, stock StockKeeper, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}

	orders := make([]models.Order, len(seed))
	next := 1
	for i, o := range seed {
		orders[i] = cloneOrder(o)
		if n, ok := parseOrderNumber(o.ID); ok && n >= next {
			next = n + 1
		}
	}

	return &Ledger{
		orders:  orders,
		stock:   stock,
		nextSeq: next,
		now:     now,
	}
}

// Add records a new order at the front of the ledger and decrements stock for
// its items. The total is computed from the items and never recomputed.
func (l *Ledger) Add(data models.NewOrder) (models.Order, []models.StockChange) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.OrderItem, len(data.Items))
	copy(items, data.Items)

	order := models.Order{
		ID:            formatOrderID(l.nextSeq),
		CustomerName:  data.CustomerName,
		CustomerEmail: data.CustomerEmail,
		Date:          models.FormatDate(l.now()),
		Status:        data.Status,
		Items:         items,
		TotalAmount:   Total(items),
	}
	l.nextSeq++

	l.orders = append([]models.Order{order}, l.orders...)

	var changes []models.StockChange
	if l.stock != nil {
		changes = l.stock.ApplySale(items)
	}

	return cloneOrder(order), changes
}

// UpdateStatus overwrites the status of an order. Any status may follow any other.
func (l *Ledger) UpdateStatus(id string, status models.OrderStatus) (models.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return models.Order{}, false
	}
	l.orders[i].Status = status
	return cloneOrder(l.orders[i]), true
}

// Remove deletes an order. Stock is not restored.
func (l *Ledger) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.orders = append(l.orders[:i], l.orders[i+1:]...)
	return true
}

// Get returns the order with the given id
func (l *Ledger) Get(id string) (models.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexOf(id)
	if i < 0 {
		return models.Order{}, false
	}
	return cloneOrder(l.orders[i]), true
}

// List returns all orders in ledger order
func (l *Ledger) List() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// Filter returns the orders whose id or customer name contains query, ignoring case
func (l *Ledger) Filter(query string) []models.Order {
	if query == "" {
		return l.List()
	}
	q := strings.ToLower(query)

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Order, 0, len(l.orders))
	for _, o := range l.orders {
		if strings.Contains(strings.ToLower(o.ID), q) ||
			strings.Contains(strings.ToLower(o.CustomerName), q) {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

// Len returns the number of orders
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// Total sums price at sale times quantity over items
func Total(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.orders {
		if l.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func formatOrderID(n int) string {
	return fmt.Sprintf("ORD-%03d", n)
}

func parseOrderNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "ORD-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
