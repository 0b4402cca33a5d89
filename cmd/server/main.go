package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/betstack/bet-engine/internal/cache"
	"github.com/betstack/bet-engine/internal/config"
	httpHandler "github.com/betstack/bet-engine/internal/handler/http"
	"github.com/betstack/bet-engine/internal/messaging"
	"github.com/betstack/bet-engine/internal/observability"
	"github.com/betstack/bet-engine/internal/repository"
	"github.com/betstack/bet-engine/internal/service"
)

func main() {
	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file loaded:", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Initialize logger
	logger := observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Msg("bet-engine starting")

	// 3. Initialize metrics
	metrics := observability.NewMetrics()

	// 4. Connect to PostgreSQL
	dbPool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping database")
	}
	logger.Info().Msg("database connection established")

	// 5. Connect to Redis (match document cache)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()
	matchCache := cache.NewMatchCache(rdb, time.Duration(cfg.Redis.MatchTTLSec)*time.Second, logger)

	// 6. Initialize Kafka producer
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll
	kafkaConfig.Producer.Return.Successes = true
	kafkaConfig.Producer.Retry.Max = 3
	kafkaConfig.Producer.Compression = sarama.CompressionSnappy

	kafkaProducer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, kafkaConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Kafka producer")
	}
	defer kafkaProducer.Close()
	logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("kafka producer initialized")

	// 7. Initialize repositories
	betRepo := repository.NewPostgresBetRepository(dbPool, logger)
	walletRepo := repository.NewPostgresWalletRepository(dbPool, logger)
	matchRepo := repository.NewPostgresMatchRepository(dbPool, logger)
	outboxRepo := repository.NewPostgresOutboxRepository(dbPool, logger)

	// 8. Initialize service layer
	betService := service.NewBetService(
		dbPool,
		betRepo,
		walletRepo,
		matchRepo,
		outboxRepo,
		service.NewRoleAuthorizer(),
		matchCache,
		cfg.Betting,
		metrics,
		logger,
	)

	// 9. API server
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      httpHandler.NewRouter(betService, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 10. Health + metrics server
	httpMux := http.NewServeMux()
	httpMux.HandleFunc("/health", httpHandler.HealthHandler())
	httpMux.HandleFunc("/ready", httpHandler.ReadyHandler(dbPool, rdb, kafkaProducer, logger))
	httpMux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      httpMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 11. Start outbox publisher (background goroutine)
	publisher := messaging.NewOutboxPublisher(outboxRepo, kafkaProducer, metrics, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go publisher.Start(ctx)
	logger.Info().Msg("outbox publisher started")

	// 12. Start servers
	go func() {
		logger.Info().Int("port", cfg.API.Port).Msg("API server listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("API server failed")
		}
	}()

	go func() {
		logger.Info().Int("port", cfg.HTTP.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// 13. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// 14. Graceful shutdown
	cancel() // Stop outbox publisher

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("API server shutdown error")
	}
	logger.Info().Msg("API server stopped")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	logger.Info().Msg("HTTP server stopped")

	logger.Info().Msg("shutdown complete")
}
