package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for product and order dates
const DateLayout = "2006-01-02"

// LowStockThreshold is the stock level below which a product counts as low stock
const LowStockThreshold = 10

// StockStatus is the stock badge of a product
type StockStatus string

// Stock statuses
const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// ClassifyStock returns the stock badge for a stock level
func ClassifyStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatusOutOfStock
	case stock < LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// OrderStatus is the fulfilment status of an order
type OrderStatus string

// Order statuses
const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every order status in display order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Product represents a product in the catalog
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	Status      StockStatus     `json:"status"`
	LastUpdated string          `json:"last_updated"`
}

// ProductPatch carries the fields of a partial product update.
// Nil fields are left unchanged.
type ProductPatch struct {
	Name     *string
	SKU      *string
	Category *string
	Stock    *int
	Price    *decimal.Decimal
	Status   *StockStatus
}

// OrderItem is a line of an order. ProductName and PriceAtSale are copied
// from the catalog when the order is placed.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

// LineTotal returns price at sale times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Date          string          `json:"date"`
	Status        OrderStatus     `json:"status"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewOrder is the caller-supplied part of an order
type NewOrder struct {
	CustomerName  string
	CustomerEmail string
	Status        OrderStatus
	Items         []OrderItem
}

// StockChange records a stock decrement applied by a sale
type StockChange struct {
	ProductID     string
	ProductName   string
	PreviousStock int
	Stock         int
	Requested     int
}

// Clamped reports whether the sale asked for more than was in stock
func (c StockChange) Clamped() bool {
	return c.Requested > c.PreviousStock
}

// Settings is the application settings record
type Settings struct {
	CompanyName         string          `json:"company_name"`
	Currency            string          `json:"currency"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	EnableNotifications bool            `json:"enable_notifications"`
	EmailAlerts         bool            `json:"email_alerts"`
}

// SettingsPatch carries the fields of a partial settings update
type SettingsPatch struct {
	CompanyName         *string
	Currency            *string
	TaxRate             *decimal.Decimal
	EnableNotifications *bool
	EmailAlerts         *bool
}

// DefaultSettings returns the settings a fresh process starts with
func DefaultSettings() Settings {
	return Settings{
		CompanyName:         "Ma Société",
		Currency:            "EUR",
		TaxRate:             decimal.NewFromInt(20),
		EnableNotifications: true,
		EmailAlerts:         false,
	}
}

// FormatDate formats t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
