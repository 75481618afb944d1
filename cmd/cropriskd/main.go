package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harvestguard/croprisk/internal/application/usecase"
	"github.com/harvestguard/croprisk/internal/domain/service"
	"github.com/harvestguard/croprisk/internal/infrastructure/config"
	"github.com/harvestguard/croprisk/internal/infrastructure/ml"
	"github.com/harvestguard/croprisk/internal/presentation/web"
	"github.com/harvestguard/croprisk/pkg/observability"
)

const serviceName = "croprisk"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting croprisk",
		"http_port", cfg.HTTPPort,
		"classifier_path", cfg.ClassifierPath,
		"encoder_path", cfg.EncoderPath,
	)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    cfg.OTLPInsecure,
			CAFile:      cfg.OTLPCAFile,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: serviceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	// Artifacts are read once; a missing or mismatched model is fatal.
	artifacts, err := ml.LoadArtifacts(cfg.ClassifierPath, cfg.EncoderPath)
	if err != nil {
		logger.Error("failed to load model artifacts", "error", err)
		os.Exit(1)
	}
	logger.Info("model artifacts loaded",
		"classifier_path", artifacts.ClassifierPath,
		"encoder_path", artifacts.EncoderPath,
		"n_features", artifacts.Classifier.NumFeatures(),
		"classes", artifacts.Encoder.Classes(),
	)

	// Wire domain services.
	encoder := service.NewFeatureEncoder()
	predictor := service.NewPredictor(artifacts.Classifier, artifacts.Encoder)
	estimator := service.NewPayoutEstimator()

	// Wire use cases.
	generatePredictionUC, err := usecase.NewGeneratePrediction(
		encoder,
		predictor,
		estimator,
		meterProvider.Meter(serviceName),
		logger,
	)
	if err != nil {
		logger.Error("failed to create prediction use case", "error", err)
		os.Exit(1)
	}

	formHandler, err := web.NewHandler(generatePredictionUC, logger)
	if err != nil {
		logger.Error("failed to create form handler", "error", err)
		os.Exit(1)
	}
	healthHandler := web.NewHealthHandler(logger, map[string]string{
		"classifier":    artifacts.ClassifierPath,
		"label_encoder": artifacts.EncoderPath,
		"loaded_at":     artifacts.LoadedAt.Format(time.RFC3339),
	})

	mux := http.NewServeMux()
	formHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      web.RecoveryMiddleware(logger)(web.LoggingMiddleware(logger)(mux)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("croprisk started",
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down croprisk")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("croprisk stopped")
}
