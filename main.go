package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	database "github.com/wanderwiseai/travel-etl/app/db"
	appLogger "github.com/wanderwiseai/travel-etl/app/logger"
	"github.com/wanderwiseai/travel-etl/app/observability/metrics"
	"github.com/wanderwiseai/travel-etl/app/tracer"
	"github.com/wanderwiseai/travel-etl/config"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/enrich"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/extractor"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/loader"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/processor"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/runner"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.New(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := tracer.InitTracingAndMetrics("travel-etl"); err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations *before* initializing the main pool
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Pipeline Wiring ---
	embedder, err := enrich.NewEmbeddingService(ctx, cfg.Enrichment.EmbeddingModel, cfg.Enrichment.RequestsPerSecond, logger)
	if err != nil {
		logger.Error("Failed to initialize embedding service", slog.Any("error", err))
		os.Exit(1)
	}
	chain := enrich.Chain{embedder}
	if cfg.Enrichment.GeocodeEnabled {
		chain = append(chain, enrich.NewGeocoder(cfg.Enrichment.GeocodeUserAgent, logger))
	}

	proc := processor.New(chain, logger)
	repository := loader.NewPostgresRepository(pool, logger)
	extractors := []extractor.Extractor{
		extractor.NewStaticExtractor(cfg.Pipeline.Destinations),
	}
	run := runner.New(proc, extractors, repository, runner.Options{
		Workers:   cfg.Pipeline.Workers,
		BatchSize: cfg.Pipeline.BatchSize,
	}, logger)

	// --- Ops Server (health + metrics) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(appLogger.StructuredLogger(logger))
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Ops.Port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	go func() {
		logger.Info("Starting ops server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Ops server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	// --- Pipeline Run ---
	exitCode := 0
	if _, err := run.Run(ctx); err != nil {
		logger.Error("Pipeline run failed", slog.Any("error", err))
		exitCode = 1
	} else if cfg.Pipeline.RetentionDays > 0 {
		retention := time.Duration(cfg.Pipeline.RetentionDays) * 24 * time.Hour
		deleted, err := repository.DeleteOlderThan(ctx, retention)
		if err != nil {
			logger.Error("Retention cleanup failed", slog.Any("error", err))
		} else if deleted > 0 {
			logger.Info("Retention cleanup completed", slog.Int64("deleted", deleted))
		}
	}

	// --- Graceful Shutdown ---
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ops server graceful shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
	if exitCode != 0 {
		pool.Close()
		os.Exit(exitCode)
	}
}
