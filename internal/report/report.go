// Package report derives chart-ready series from catalog and ledger
// snapshots. Nothing here mutates its inputs.
package report

import (
	"sort"
	"time"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

// RevenuePoint is the revenue of one calendar date
type RevenuePoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// StatusSlice is the number of orders in one status
type StatusSlice struct {
	Name  models.OrderStatus `json:"name"`
	Value int                `json:"value"`
	Color string             `json:"color,omitempty"`
}

// DefaultStatusColors maps each order status to its chart color
var DefaultStatusColors = map[models.OrderStatus]string{
	models.OrderStatusPending:    "#f59e0b",
	models.OrderStatusProcessing: "#3b82f6",
	models.OrderStatusShipped:    "#8b5cf6",
	models.OrderStatusDelivered:  "#10b981",
	models.OrderStatusCancelled:  "#ef4444",
}

// RevenueByDate sums order totals per date, ascending by calendar date
func RevenueByDate(orders []models.Order) []RevenuePoint {
	index := make(map[string]int)
	points := make([]RevenuePoint, 0)

	for _, o := range orders {
		if i, ok := index[o.Date]; ok {
			points[i].Amount = points[i].Amount.Add(o.TotalAmount)
			continue
		}
		index[o.Date] = len(points)
		points = append(points, RevenuePoint{Date: o.Date, Amount: o.TotalAmount})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return dateLess(points[i].Date, points[j].Date)
	})
	return points
}

// StatusDistribution counts orders per status. Statuses without orders are
// left out. colors is looked up by status; missing entries stay empty.
func StatusDistribution(orders []models.Order, colors map[models.OrderStatus]string) []StatusSlice {
	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, o := range orders {
		counts[o.Status]++
	}

	out := make([]StatusSlice, 0, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		n := counts[status]
		if n == 0 {
			continue
		}
		out = append(out, StatusSlice{
			Name:  status,
			Value: n,
			Color: colors[status],
		})
	}
	return out
}

// dateLess orders calendar dates; unparseable dates sort after valid ones
func dateLess(a, b string) bool {
	ta, errA := time.Parse(models.DateLayout, a)
	tb, errB := time.Parse(models.DateLayout, b)
	switch {
	case errA == nil && errB == nil:
		return ta.Before(tb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
