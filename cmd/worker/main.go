package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopit-platform/courier-capacity-service/internal/application"
	"github.com/shopit-platform/courier-capacity-service/internal/domain"
	mongoRepo "github.com/shopit-platform/courier-capacity-service/internal/infrastructure/mongodb"
	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/kafka"
	"github.com/shopit-platform/courier-capacity-service/pkg/logging"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
	"github.com/shopit-platform/courier-capacity-service/pkg/mongodb"
	"github.com/shopit-platform/courier-capacity-service/pkg/outbox"
)

const serviceName = "courier-capacity-service"

func main() {
	logger := logging.New(logging.DefaultConfig(serviceName))
	logger.SetDefault()

	logger.Info("Starting courier-capacity worker")

	// The capacity and classification tables are static configuration;
	// refuse to start if they are inconsistent
	if err := domain.ValidateCapacityTables(); err != nil {
		logger.WithError(err).Error("Capacity table validation failed")
		os.Exit(1)
	}

	config := loadConfig()
	m := metrics.New(metrics.DefaultConfig(serviceName))

	ctx := context.Background()
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceCourierCapacity)

	repo := mongoRepo.NewCourierRepository(mongoClient.Database(), eventFactory, m)

	producer := kafka.NewProductionProducer(config.Kafka, m, logger)
	defer producer.Close()

	consumer := kafka.NewProductionConsumer(config.Kafka, m, logger)
	defer consumer.Close()

	// Domain events staged by the repository are drained to Kafka by the
	// outbox publisher
	outboxPublisher := outbox.NewPublisher(repo.GetOutboxRepository(), producer, logger, m, nil)
	if err := outboxPublisher.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start outbox publisher")
		os.Exit(1)
	}
	defer outboxPublisher.Stop()
	logger.Info("Outbox publisher started")

	eligibilityService := application.NewEligibilityApplicationService(repo, producer, eventFactory, logger, m)
	orderHandler := application.NewOrderEventHandler(eligibilityService, logger)

	consumer.Subscribe(kafka.Topics.OrdersEvents, cloudevents.OrderPlaced, orderHandler.HandleOrderPlaced)
	logger.Info("Subscribed to order events", "topic", kafka.Topics.OrdersEvents)

	// Start blocks until the context is cancelled, so it runs in the
	// background while main waits on the shutdown signal
	consumerCtx, cancelConsumer := context.WithCancel(ctx)
	defer cancelConsumer()
	go func() {
		if err := consumer.Start(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Error("Consumer stopped unexpectedly")
			os.Exit(1)
		}
	}()
	logger.Info("Consumer started", "group", config.Kafka.ConsumerGroup)

	metricsServer := startMetricsServer(config.MetricsAddr, m, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down worker...")

	cancelConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Metrics server shutdown failed")
	}

	logger.Info("Worker stopped")
}

func startMetricsServer(addr string, m *metrics.Metrics, logger *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Metrics server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server failed")
		}
	}()

	return server
}

// Config holds application configuration
type Config struct {
	MongoDB     *mongodb.Config
	Kafka       *kafka.Config
	MetricsAddr string
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "courier_capacity_db")

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	kafkaConfig.ConsumerGroup = getEnv("KAFKA_CONSUMER_GROUP", "courier-capacity-worker")
	kafkaConfig.ClientID = serviceName

	return &Config{
		MongoDB:     mongoConfig,
		Kafka:       kafkaConfig,
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
