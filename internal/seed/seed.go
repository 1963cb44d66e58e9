// Package seed holds the mock catalog and orders the service starts with.
package seed

import (
	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Products returns the initial catalog
func Products() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Ergonomic Office Chair", SKU: "FUR-001", Category: "Furniture", Stock: 45, Price: price("199.00"), Status: models.StockStatusInStock, LastUpdated: "2023-10-25"},
		{ID: "2", Name: "Wireless Mechanical Keyboard", SKU: "TEC-002", Category: "Electronics", Stock: 12, Price: price("129.50"), Status: models.StockStatusLowStock, LastUpdated: "2023-10-24"},
		{ID: "3", Name: `27" 4K Monitor`, SKU: "TEC-003", Category: "Electronics", Stock: 0, Price: price("349.00"), Status: models.StockStatusOutOfStock, LastUpdated: "2023-10-20"},
		{ID: "4", Name: "Standing Desk Converter", SKU: "FUR-004", Category: "Furniture", Stock: 28, Price: price("149.99"), Status: models.StockStatusInStock, LastUpdated: "2023-10-26"},
		{ID: "5", Name: "USB-C Docking Station", SKU: "TEC-005", Category: "Electronics", Stock: 85, Price: price("89.99"), Status: models.StockStatusInStock, LastUpdated: "2023-10-26"},
		{ID: "6", Name: "Noise Cancelling Headphones", SKU: "AUD-006", Category: "Audio", Stock: 5, Price: price("299.00"), Status: models.StockStatusLowStock, LastUpdated: "2023-10-22"},
		{ID: "7", Name: "Webcam HD 1080p", SKU: "TEC-007", Category: "Electronics", Stock: 110, Price: price("59.00"), Status: models.StockStatusInStock, LastUpdated: "2023-10-21"},
	}
}

// Orders returns the initial ledger
func Orders() []models.Order {
	return []models.Order{
		{
			ID:            "ORD-001",
			CustomerName:  "Alice Dupont",
			CustomerEmail: "alice@example.com",
			Date:          "2023-10-26",
			Status:        models.OrderStatusDelivered,
			Items: []models.OrderItem{
				{ProductID: "1", ProductName: "Ergonomic Office Chair", Quantity: 1, PriceAtSale: price("199.00")},
			},
			TotalAmount: price("199.00"),
		},
		{
			ID:            "ORD-002",
			CustomerName:  "Bob Martin",
			CustomerEmail: "bob@example.com",
			Date:          "2023-10-27",
			Status:        models.OrderStatusProcessing,
			Items: []models.OrderItem{
				{ProductID: "2", ProductName: "Wireless Keyboard", Quantity: 2, PriceAtSale: price("129.50")},
			},
			TotalAmount: price("259.00"),
		},
	}
}
