package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_added_total",
		Help: "Total number of products added to the catalog",
	})

	ProductsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "Total number of product updates applied",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "Total number of products removed from the catalog",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of order status overwrites",
	}, []string{"status"})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted",
	})

	StockUnitsSoldTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_units_sold_total",
		Help: "Total number of stock units removed by orders",
	})

	StockClampedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_clamped_total",
		Help: "Total number of order lines that asked for more than was in stock",
	})

	MissingKeyOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "missing_key_operations_total",
		Help: "Total number of mutations against unknown ids",
	}, []string{"operation"})

	SettingsUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settings_updates_total",
		Help: "Total number of settings updates",
	})

	AlertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_sent_total",
		Help: "Total number of alerts sent",
	}, []string{"kind", "channel"})

	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_publish_failures_total",
		Help: "Total number of domain events that failed to publish",
	}, []string{"event_type"})

	EventConsumeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_consume_failures_total",
		Help: "Total number of event consumer failures",
	}, []string{"stage"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
