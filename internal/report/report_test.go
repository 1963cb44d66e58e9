package report

import (
	"testing"

	"backoffice/internal/models"
	"backoffice/internal/seed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(date string, status models.OrderStatus, total string) models.Order {
	return models.Order{
		Date:        date,
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
	}
}

func TestRevenueByDate(t *testing.T) {
	orders := []models.Order{
		order("2023-10-27", models.OrderStatusProcessing, "259.00"),
		order("2023-10-26", models.OrderStatusDelivered, "199.00"),
		order("2023-10-27", models.OrderStatusCancelled, "41.00"),
		order("2023-09-30", models.OrderStatusPending, "10.50"),
	}

	points := RevenueByDate(orders)

	require.Len(t, points, 3)
	assert.Equal(t, "2023-09-30", points[0].Date)
	assert.Equal(t, "10.50", points[0].Amount.StringFixed(2))
	assert.Equal(t, "2023-10-26", points[1].Date)
	assert.Equal(t, "199.00", points[1].Amount.StringFixed(2))
	// cancelled orders still count toward revenue
	assert.Equal(t, "2023-10-27", points[2].Date)
	assert.Equal(t, "300.00", points[2].Amount.StringFixed(2))
}

func TestRevenueByDateSeed(t *testing.T) {
	points := RevenueByDate(seed.Orders())

	require.Len(t, points, 2)
	assert.Equal(t, "2023-10-26", points[0].Date)
	assert.Equal(t, "2023-10-27", points[1].Date)
}

func TestRevenueByDateUnparseableSortsLast(t *testing.T) {
	points := RevenueByDate([]models.Order{
		order("not-a-date", models.OrderStatusPending, "1.00"),
		order("2024-01-02", models.OrderStatusPending, "2.00"),
	})

	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.Equal(t, "not-a-date", points[1].Date)
}

func TestRevenueByDateEmpty(t *testing.T) {
	points := RevenueByDate(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestStatusDistribution(t *testing.T) {
	orders := []models.Order{
		order("2023-10-26", models.OrderStatusDelivered, "1"),
		order("2023-10-26", models.OrderStatusPending, "1"),
		order("2023-10-26", models.OrderStatusDelivered, "1"),
		order("2023-10-26", models.OrderStatusShipped, "1"),
	}

	slices := StatusDistribution(orders, DefaultStatusColors)

	assert.Equal(t, []StatusSlice{
		{Name: models.OrderStatusPending, Value: 1, Color: "#f59e0b"},
		{Name: models.OrderStatusShipped, Value: 1, Color: "#8b5cf6"},
		{Name: models.OrderStatusDelivered, Value: 2, Color: "#10b981"},
	}, slices)
}

func TestStatusDistributionOmitsZeroCounts(t *testing.T) {
	slices := StatusDistribution(seed.Orders(), nil)

	require.Len(t, slices, 2)
	for _, s := range slices {
		assert.NotEqual(t, models.OrderStatusCancelled, s.Name)
		assert.Empty(t, s.Color)
	}
}

func TestKPICards(t *testing.T) {
	cards := KPICards(DefaultKPIInputs())

	require.Len(t, cards, 4)
	assert.Equal(t, KPICard{Key: KPITotalRevenue, Value: "$54,230", Trend: 12.5, Positive: true, Icon: IconCurrency}, cards[0])
	assert.Equal(t, KPIActiveOrders, cards[1].Key)
	assert.False(t, cards[1].Positive)
	assert.Equal(t, IconCart, cards[1].Icon)
	assert.Equal(t, KPINewCustomers, cards[2].Key)
	assert.Equal(t, KPIStockValue, cards[3].Key)
}

func TestKPICardsZeroTrendIsPositive(t *testing.T) {
	cards := KPICards(KPIInputs{})
	for _, c := range cards {
		assert.True(t, c.Positive)
	}
}

func TestWeeklyComparison(t *testing.T) {
	points := WeeklyComparison()

	require.Len(t, points, 7)
	assert.Equal(t, "Mon", points[0].Name)
	assert.Equal(t, "Sun", points[6].Name)
}
