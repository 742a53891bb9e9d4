package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/cache"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/config"
	httpHandler "github.com/dannythehat/footy-oracle-v2-sub003/internal/handler/http"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/messaging"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/metrics"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/predictions"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/scheduler"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/service"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/store"
	"github.com/dannythehat/footy-oracle-v2-sub003/pkg/oddsapi"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting odds-pipeline")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipelineMetrics := metrics.NewPipelineMetrics()

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Odds provider client; a missing key is reported per request
	if cfg.OddsAPI.APIKey == "" {
		logger.Warn().Msg("ODDS_API_KEY is not set, odds requests will fail")
	}
	oddsClient := oddsapi.NewClient(
		cfg.OddsAPI.APIKey,
		oddsapi.WithBaseURL(cfg.OddsAPI.BaseURL),
		oddsapi.WithHTTPClient(&http.Client{Timeout: cfg.OddsAPI.Timeout}),
		oddsapi.WithRateLimit(cfg.OddsAPI.RateLimit, cfg.OddsAPI.Burst),
		oddsapi.WithRecorder(pipelineMetrics),
	)

	oddsService := service.NewOddsService(oddsClient, redisCache, pipelineMetrics, logger)
	logger.Info().Msg("odds service initialized")

	// Selections
	var publisher service.SnapshotPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := messaging.NewKafkaPublisher(
			messaging.KafkaPublisherConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.SelectionsTopic,
			},
			logger,
		)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	selectionService := service.NewSelectionService(
		predictions.NewFileSource(cfg.Predictions.Dir, logger),
		store.NewSelectionStore(cfg.Store.TTL, logger),
		publisher,
		pipelineMetrics,
		logger,
	)
	logger.Info().Str("predictions_dir", cfg.Predictions.Dir).Msg("selection service initialized")

	// Kafka consumer for refresh requests
	if cfg.Kafka.Enabled {
		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.RefreshTopic,
				GroupID: cfg.Kafka.GroupID,
			},
			oddsService,
			logger,
		)
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
		}()
	}

	// Daily selection refresh
	if cfg.Scheduler.Enabled {
		loc, err := cfg.Scheduler.Location()
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid scheduler config")
		}

		daily := scheduler.NewDailyScheduler(
			selectionService,
			cfg.Scheduler.Hour,
			logger,
			scheduler.WithLocation(loc),
			scheduler.WithRunOnStart(cfg.Scheduler.RunOnStart),
		)

		go func() {
			if err := daily.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("daily scheduler failed")
			}
		}()
	}

	// HTTP routes
	router := httpHandler.NewRouter(
		httpHandler.RouterConfig{
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		httpHandler.NewOddsHandler(oddsService, logger),
		httpHandler.NewSelectionHandler(selectionService, logger),
		logger,
	)

	// Health and monitoring endpoints
	router.Get("/health", healthHandler)
	router.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache)
	})
	router.Handle("/metrics", pipelineMetrics.Handler())
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer and scheduler
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "odds-pipeline").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, cache *cache.RedisCache) {
	if err := cache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
