package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeProductAdded       = "PRODUCT_ADDED"
	EventTypeProductUpdated     = "PRODUCT_UPDATED"
	EventTypeProductDeleted     = "PRODUCT_DELETED"
	EventTypeStockDecremented   = "STOCK_DECREMENTED"
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeOrderDeleted       = "ORDER_DELETED"
	EventTypeSettingsUpdated    = "SETTINGS_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Type returns the event type
func (e BaseEvent) Type() string {
	return e.EventType
}

// ProductEvent published when a product is added, updated or deleted
type ProductEvent struct {
	BaseEvent
	ProductID string      `json:"product_id"`
	SKU       string      `json:"sku,omitempty"`
	Stock     int         `json:"stock"`
	Status    StockStatus `json:"status,omitempty"`
}

// StockDecrementedEvent published for each product touched by an order
type StockDecrementedEvent struct {
	BaseEvent
	OrderID       string `json:"order_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	PreviousStock int    `json:"previous_stock"`
	Stock         int    `json:"stock"`
}

// OrderCreatedEvent published when an order is placed
type OrderCreatedEvent struct {
	BaseEvent
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []OrderItemData `json:"items"`
}

// OrderStatusChangedEvent published when an order status is overwritten
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// OrderDeletedEvent published when an order is removed
type OrderDeletedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
}

// SettingsUpdatedEvent published after a settings merge
type SettingsUpdatedEvent struct {
	BaseEvent
	Settings Settings `json:"settings"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}
