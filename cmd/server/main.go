package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/config"
	"backoffice/internal/api"
	"backoffice/internal/broker"
	"backoffice/internal/catalog"
	"backoffice/internal/ledger"
	"backoffice/internal/models"
	"backoffice/internal/prefs"
	"backoffice/internal/redisclient"
	"backoffice/internal/seed"
	"backoffice/internal/service"
	"backoffice/internal/settings"
	"backoffice/internal/store"
	"backoffice/internal/util"
	"backoffice/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting backoffice service")

	if cfg.Observ.TracingEnabled {
		tp, err := util.InitTracer(util.ServiceName, cfg.Observ.JaegerEndpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
	}

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	var seedProducts []models.Product
	var seedOrders []models.Order
	if cfg.Dashboard.SeedMockData {
		seedProducts = seed.Products()
		seedOrders = seed.Orders()
	}

	products := catalog.New(seedProducts, nil)
	orders := ledger.New(seedOrders, products, nil)
	settingsStore := settings.NewStore(models.DefaultSettings())
	logger.Info("Stores ready",
		zap.Int("products", products.Len()),
		zap.Int("orders", orders.Len()))

	backend, closeBackend := preferencesBackend(cfg)
	defer closeBackend()

	var sink broker.EventSink = broker.NopSink{}
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		defer producer.Close()
		sink = producer
		log.Println("Kafka producer initialized")
	}
	eventPublisher := broker.NewEventPublisher(sink)

	inventoryService := service.NewInventoryService(products, eventPublisher)
	salesService := service.NewSalesService(orders, products, eventPublisher)
	settingsService := service.NewSettingsService(settingsStore, eventPublisher)
	reportService := service.NewReportService(orders, cfg.Dashboard.KPIs)
	preferencesService := prefs.NewService(backend)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var alertWorker *worker.AlertWorker
	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
		alertWorker = worker.NewAlertWorker(consumer, settingsStore, worker.NewLogNotifier())
		go func() {
			if err := alertWorker.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Alert worker error: %v", err)
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	handler := api.NewHandler(inventoryService, salesService, settingsService, reportService, preferencesService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if alertWorker != nil {
		if err := alertWorker.Stop(); err != nil {
			log.Printf("Error stopping alert worker: %v", err)
		}
	}

	log.Println("Server exited")
}

// preferencesBackend connects the configured preferences backend. The
// returned func releases its connection.
func preferencesBackend(cfg *config.Config) (prefs.Backend, func()) {
	switch cfg.Preferences.Backend {
	case config.PreferencesRedis:
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Redis connected")
		return redisClient, func() { redisClient.Close() }

	case config.PreferencesPostgres:
		db, err := store.NewStore(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare preferences schema: %v", err)
		}
		log.Println("Database connected")
		return db, func() { db.Close() }

	case config.PreferencesMemory:
	default:
		log.Printf("Unknown preferences backend %q, using memory", cfg.Preferences.Backend)
	}
	return prefs.NewMemoryBackend(), func() {}
}
