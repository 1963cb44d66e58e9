package service

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStock    = errors.New("stock must not be negative")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrEmptyOrder      = errors.New("order has no items")
)

// EventPublisher publishes domain events. *broker.EventPublisher is the
// Kafka-backed implementation.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event *models.ProductEvent) error
	PublishStockDecremented(ctx context.Context, event *models.StockDecrementedEvent) error
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error
	PublishSettingsUpdated(ctx context.Context, event *models.SettingsUpdatedEvent) error
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// logPublishError records a failed publish. Publishing never fails the
// mutation; the broker counts the failure.
func logPublishError(logger *zap.Logger, eventType string, err error) {
	if err == nil {
		return
	}
	logger.Warn("Mutation applied but event not published",
		zap.String("event_type", eventType),
		zap.Error(err))
}

func validOrderStatus(status models.OrderStatus) bool {
	for _, s := range models.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
