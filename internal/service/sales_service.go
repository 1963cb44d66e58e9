package service

import (
	"context"
	"fmt"

	"backoffice/internal/catalog"
	"backoffice/internal/ledger"
	"backoffice/internal/models"
	"backoffice/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UnknownProductName is recorded for order lines whose product is not in the catalog
const UnknownProductName = "Unknown"

// SalesService handles order business logic
type SalesService struct {
	ledger         *ledger.Ledger
	catalog        *catalog.Catalog
	eventPublisher EventPublisher
	logger         *zap.Logger
}

// NewSalesService creates a new sales service
func NewSalesService(
	ledger *ledger.Ledger,
	catalog *catalog.Catalog,
	eventPublisher EventPublisher,
) *SalesService {
	return &SalesService{
		ledger:         ledger,
		catalog:        catalog,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerEmail string             `json:"customer_email" binding:"required"`
	Status        models.OrderStatus `json:"status,omitempty"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest represents an item in an order
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateStatusRequest represents an order status change
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder records an order, copying product names and prices from the
// catalog, and decrements stock for every line
func (s *SalesService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "SalesService.CreateOrder")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !validOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", item.Quantity, item.ProductID)
		}
		items = append(items, s.resolveItem(item))
	}

	order, changes := s.ledger.Add(models.NewOrder{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        status,
		Items:         items,
	})

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))

	s.recordStockChanges(ctx, order.ID, changes)

	itemData := make([]models.OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		itemData = append(itemData, models.OrderItemData{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}

	event := &models.OrderCreatedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeOrderCreated),
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Items:         itemData,
	}
	logPublishError(s.logger, models.EventTypeOrderCreated, s.eventPublisher.PublishOrderCreated(ctx, event))

	return &order, nil
}

// resolveItem copies the current name and price of the product. Unknown
// products fall back to UnknownProductName and a zero price.
func (s *SalesService) resolveItem(item OrderItemRequest) models.OrderItem {
	line := models.OrderItem{
		ProductID:   item.ProductID,
		ProductName: UnknownProductName,
		Quantity:    item.Quantity,
		PriceAtSale: decimal.Zero,
	}

	if product, ok := s.catalog.Get(item.ProductID); ok {
		line.ProductName = product.Name
		line.PriceAtSale = product.Price
	} else {
		s.logger.Warn("Order line references unknown product",
			zap.String("product_id", item.ProductID))
	}
	return line
}

func (s *SalesService) recordStockChanges(ctx context.Context, orderID string, changes []models.StockChange) {
	for _, c := range changes {
		util.StockUnitsSoldTotal.Add(float64(c.PreviousStock - c.Stock))
		if c.Clamped() {
			util.StockClampedTotal.Inc()
			s.logger.Warn("Order quantity exceeded stock, clamped at zero",
				zap.String("order_id", orderID),
				zap.String("product_id", c.ProductID),
				zap.Int("requested", c.Requested),
				zap.Int("available", c.PreviousStock))
		}

		event := &models.StockDecrementedEvent{
			BaseEvent:     newBaseEvent(models.EventTypeStockDecremented),
			OrderID:       orderID,
			ProductID:     c.ProductID,
			ProductName:   c.ProductName,
			PreviousStock: c.PreviousStock,
			Stock:         c.Stock,
		}
		logPublishError(s.logger, models.EventTypeStockDecremented, s.eventPublisher.PublishStockDecremented(ctx, event))
	}
}

// UpdateOrderStatus overwrites the status of an order. No transition rules
// apply. An unknown id is a no-op.
func (s *SalesService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, bool, error) {
	ctx, span := util.StartSpan(ctx, "SalesService.UpdateOrderStatus")
	defer span.End()

	if !validOrderStatus(status) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, found := s.ledger.UpdateStatus(id, status)
	if !found {
		util.MissingKeyOpsTotal.WithLabelValues("update_order_status").Inc()
		s.logger.Debug("Status change of unknown order ignored", zap.String("order_id", id))
		return nil, false, nil
	}

	util.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info("Order status changed",
		zap.String("order_id", id),
		zap.String("status", string(status)))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderStatusChanged),
		OrderID:   id,
		Status:    status,
	}
	logPublishError(s.logger, models.EventTypeOrderStatusChanged, s.eventPublisher.PublishOrderStatusChanged(ctx, event))

	return &order, true, nil
}

// DeleteOrder removes an order. Stock taken by the order is not given back.
func (s *SalesService) DeleteOrder(ctx context.Context, id string) bool {
	ctx, span := util.StartSpan(ctx, "SalesService.DeleteOrder")
	defer span.End()

	if !s.ledger.Remove(id) {
		util.MissingKeyOpsTotal.WithLabelValues("delete_order").Inc()
		s.logger.Debug("Delete of unknown order ignored", zap.String("order_id", id))
		return false
	}

	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted", zap.String("order_id", id))

	event := &models.OrderDeletedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderDeleted),
		OrderID:   id,
	}
	logPublishError(s.logger, models.EventTypeOrderDeleted, s.eventPublisher.PublishOrderDeleted(ctx, event))
	return true
}

// ListOrders returns the orders matching query by id or customer name
func (s *SalesService) ListOrders(ctx context.Context, query string) []models.Order {
	_, span := util.StartSpan(ctx, "SalesService.ListOrders")
	defer span.End()

	return s.ledger.Filter(query)
}

// GetOrder retrieves an order by ID
func (s *SalesService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, ok := s.ledger.Get(id)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}
