package worker

import (
	"context"
	"fmt"
	"log"

	"backoffice/internal/broker"
	"backoffice/internal/models"
	"backoffice/internal/util"

	"go.uber.org/zap"
)

// Alert channels
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

// Alert kinds
const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
	AlertNewOrder   = "new_order"
)

// Alert is a notification raised from a domain event
type Alert struct {
	Kind    string
	Subject string
	Message string
}

// Notifier delivers an alert on one channel
type Notifier interface {
	Notify(ctx context.Context, channel string, alert Alert) error
}

// SettingsSource provides the current notification flags
type SettingsSource interface {
	Get() models.Settings
}

// LogNotifier writes alerts to the structured log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs every alert
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: util.GetLogger()}
}

// Notify logs the alert
func (n *LogNotifier) Notify(_ context.Context, channel string, alert Alert) error {
	n.logger.Info("Alert",
		zap.String("channel", channel),
		zap.String("kind", alert.Kind),
		zap.String("subject", alert.Subject),
		zap.String("message", alert.Message))
	return nil
}

// AlertWorker turns stock and order events into notifications
type AlertWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	settings     SettingsSource
	notifier     Notifier
	logger       *zap.Logger
}

// NewAlertWorker creates a new alert worker
func NewAlertWorker(
	consumer *broker.Consumer,
	settings SettingsSource,
	notifier Notifier,
) *AlertWorker {
	w := &AlertWorker{
		consumer: consumer,
		settings: settings,
		notifier: notifier,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnStockDecremented(w.HandleStockDecremented)
	eventHandler.OnOrderCreated(w.HandleOrderCreated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *AlertWorker) Start(ctx context.Context) error {
	log.Println("Starting alert worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AlertWorker) Stop() error {
	log.Println("Stopping alert worker...")
	return w.consumer.Close()
}

// HandleStockDecremented raises an alert when a sale takes a product below
// the low-stock threshold or to zero
func (w *AlertWorker) HandleStockDecremented(ctx context.Context, event *models.StockDecrementedEvent) error {
	before := models.ClassifyStock(event.PreviousStock)
	after := models.ClassifyStock(event.Stock)
	if before == after || after == models.StockStatusInStock {
		return nil
	}

	alert := Alert{
		Kind:    AlertLowStock,
		Subject: event.ProductName,
		Message: fmt.Sprintf("%s is low on stock: %d left", event.ProductName, event.Stock),
	}
	if after == models.StockStatusOutOfStock {
		alert.Kind = AlertOutOfStock
		alert.Message = fmt.Sprintf("%s is out of stock", event.ProductName)
	}

	return w.dispatch(ctx, alert)
}

// HandleOrderCreated raises a new-order alert
func (w *AlertWorker) HandleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	return w.dispatch(ctx, Alert{
		Kind:    AlertNewOrder,
		Subject: event.OrderID,
		Message: fmt.Sprintf("New order %s from %s: %s", event.OrderID, event.CustomerName, event.TotalAmount.StringFixed(2)),
	})
}

// dispatch sends the alert on every channel enabled in the settings
func (w *AlertWorker) dispatch(ctx context.Context, alert Alert) error {
	current := w.settings.Get()

	var channels []string
	if current.EnableNotifications {
		channels = append(channels, ChannelPush)
	}
	if current.EmailAlerts {
		channels = append(channels, ChannelEmail)
	}

	for _, channel := range channels {
		if err := w.notifier.Notify(ctx, channel, alert); err != nil {
			return fmt.Errorf("failed to send %s alert on %s: %w", alert.Kind, channel, err)
		}
		util.AlertsSentTotal.WithLabelValues(alert.Kind, channel).Inc()
	}

	if len(channels) == 0 {
		w.logger.Debug("Alert suppressed, notifications disabled", zap.String("kind", alert.Kind))
	}
	return nil
}
