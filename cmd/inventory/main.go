package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tdnguyen/serialpos/docs"
	"github.com/tdnguyen/serialpos/internal/catalog"
	catalogHTTP "github.com/tdnguyen/serialpos/internal/catalog/delivery/http"
	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	"github.com/tdnguyen/serialpos/internal/inventory"
	httpDelivery "github.com/tdnguyen/serialpos/internal/inventory/delivery/http"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	invrepository "github.com/tdnguyen/serialpos/internal/inventory/repository"
	invquery "github.com/tdnguyen/serialpos/internal/inventory/usecase/query"
	"github.com/tdnguyen/serialpos/internal/order"
	orderHTTP "github.com/tdnguyen/serialpos/internal/order/delivery/http"
	orderdomain "github.com/tdnguyen/serialpos/internal/order/domain"
	"github.com/tdnguyen/serialpos/internal/supplier"
	supplierHTTP "github.com/tdnguyen/serialpos/internal/supplier/delivery/http"
	supplierdomain "github.com/tdnguyen/serialpos/internal/supplier/domain"
	"github.com/tdnguyen/serialpos/kafka"
	"github.com/tdnguyen/serialpos/pkg/database"
	"github.com/tdnguyen/serialpos/pkg/logger"
	"github.com/tdnguyen/serialpos/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting inventory service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "serialposdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&catalogdomain.Product{},
		&invdomain.Unit{},
		&invdomain.AdjustmentEntry{},
		&supplierdomain.Supplier{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher (optional; the service runs without a broker)
	var publisher *kafka.Publisher
	brokers := strings.Split(getEnv("KAFKA_BROKERS", ""), ",")
	if brokers[0] != "" {
		publisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, continuing without events")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Initialize handlers with Wire DI
	inventoryHandler, err := inventory.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	productHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}
	supplierHandler, err := supplier.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize supplier handler")
	}
	orderHandler, err := order.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}

	// Kafka consumer driving the low-stock alerter
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if publisher != nil {
		consumer, err := kafka.NewConsumer(brokers, getEnv("KAFKA_GROUP_ID", "inventory-alerts"), []string{kafka.TopicStockMovements})
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka consumer, continuing without alerts")
		} else {
			defer consumer.Close()
			repo := invrepository.NewGormInventoryRepositoryWithTracing(db)
			products := catalogrepository.NewGormProductRepository(db)
			alerter := kafka.NewLowStockAlerter(invquery.NewStockSummaryHandler(repo, products))
			alerter.Register(consumer)
			if err := consumer.Start(consumerCtx); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
			}
		}
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(inventoryHandler, productHandler, supplierHandler, orderHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(
	inventoryHandler *httpDelivery.InventoryHandler,
	productHandler *catalogHTTP.ProductHandler,
	supplierHandler *supplierHTTP.SupplierHandler,
	orderHandler *orderHTTP.OrderHandler,
	db *sql.DB,
	port string,
) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	inventoryHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	supplierHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	// Health check endpoint
	inventoryHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// CORS middleware
	corsHandler := httpDelivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
