package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"backoffice/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventSink accepts keyed events. *Producer is the Kafka implementation.
type EventSink interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// NopSink drops every event. Used when Kafka is disabled.
type NopSink struct{}

// PublishEvent discards the event
func (NopSink) PublishEvent(context.Context, string, interface{}) error {
	return nil
}

// EventPublisher handles publishing domain events
type EventPublisher struct {
	sink EventSink
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(sink EventSink) *EventPublisher {
	return &EventPublisher{sink: sink}
}

// PublishProductEvent publishes ProductAdded, ProductUpdated or ProductDeleted
func (ep *EventPublisher) PublishProductEvent(ctx context.Context, event *models.ProductEvent) error {
	return ep.sink.PublishEvent(ctx, productKey(event.ProductID), event)
}

// PublishStockDecremented publishes StockDecremented event
func (ep *EventPublisher) PublishStockDecremented(ctx context.Context, event *models.StockDecrementedEvent) error {
	return ep.sink.PublishEvent(ctx, productKey(event.ProductID), event)
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	return ep.sink.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishOrderStatusChanged publishes OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	return ep.sink.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishOrderDeleted publishes OrderDeleted event
func (ep *EventPublisher) PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error {
	return ep.sink.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishSettingsUpdated publishes SettingsUpdated event
func (ep *EventPublisher) PublishSettingsUpdated(ctx context.Context, event *models.SettingsUpdatedEvent) error {
	return ep.sink.PublishEvent(ctx, "settings", event)
}

func productKey(id string) string {
	return fmt.Sprintf("product-%s", id)
}

func orderKey(id string) string {
	return fmt.Sprintf("order-%s", id)
}

// EventHandler handles incoming events
type EventHandler struct {
	onStockDecremented func(context.Context, *models.StockDecrementedEvent) error
	onOrderCreated     func(context.Context, *models.OrderCreatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnStockDecremented registers a handler for StockDecremented events
func (eh *EventHandler) OnStockDecremented(handler func(context.Context, *models.StockDecrementedEvent) error) {
	eh.onStockDecremented = handler
}

// OnOrderCreated registers a handler for OrderCreated events
func (eh *EventHandler) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	eh.onOrderCreated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeStockDecremented:
		if eh.onStockDecremented != nil {
			var event models.StockDecrementedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal StockDecremented event: %w", err)
			}
			return eh.onStockDecremented(ctx, &event)
		}

	case models.EventTypeOrderCreated:
		if eh.onOrderCreated != nil {
			var event models.OrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderCreated event: %w", err)
			}
			return eh.onOrderCreated(ctx, &event)
		}

	default:
		log.Printf("Ignoring event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)
	}

	return nil
}
