package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStock(t *testing.T) {
	testCases := []struct {
		stock    int
		expected StockStatus
	}{
		{stock: -1, expected: StockStatusOutOfStock},
		{stock: 0, expected: StockStatusOutOfStock},
		{stock: 1, expected: StockStatusLowStock},
		{stock: 9, expected: StockStatusLowStock},
		{stock: 10, expected: StockStatusInStock},
		{stock: 110, expected: StockStatusInStock},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ClassifyStock(tc.stock), "stock %d", tc.stock)
	}
}

func TestLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, PriceAtSale: decimal.RequireFromString("19.99")}
	assert.Equal(t, "59.97", item.LineTotal().StringFixed(2))
}

func TestStockChangeClamped(t *testing.T) {
	assert.False(t, StockChange{PreviousStock: 5, Stock: 3, Requested: 2}.Clamped())
	assert.False(t, StockChange{PreviousStock: 5, Stock: 0, Requested: 5}.Clamped())
	assert.True(t, StockChange{PreviousStock: 3, Stock: 0, Requested: 5}.Clamped())
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2023, 10, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2023-10-05", FormatDate(ts))
}
