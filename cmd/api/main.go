// Package main is the entry point for the archiplan API server.
//
// It loads configuration, selects the project store (PostgreSQL when
// DATABASE_URL is set, in-process memory otherwise), wires the optional
// CloudWatch metrics and SQS pipeline queue, and serves the chi router.
//
// Inside AWS Lambda the router is driven by API Gateway HTTP events;
// everywhere else it runs as a plain HTTP server.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"archiplan/internal/api/handlers"
	"archiplan/internal/config"
	"archiplan/internal/core"
	"archiplan/internal/db"
	"archiplan/internal/projects"
	"archiplan/internal/queue"
	"archiplan/internal/telemetry"
	"archiplan/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("archiplan API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
		"build", cfg.Build,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	srv, cleanup, err := buildServer(ctx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer cleanup()

	if isLambdaEnvironment() {
		return runLambda(srv, logger)
	}
	return runHTTPServer(srv, cfg, logger)
}

// buildServer assembles every dependency and mounts the routes. The returned
// cleanup releases the database pool, if one was opened.
func buildServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*core.Server, func(), error) {
	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("creating server: %w", err)
	}

	cleanup := func() {}
	var store types.ProjectStore
	if cfg.UsePostgres() {
		pool, err := db.Connect(ctx, cfg.Database.URL.Unmask(), db.PoolConfig{
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("applying schema: %w", err)
		}
		store = db.NewProjectRepository(pool)
		srv.HealthProbes = append(srv.HealthProbes, db.HealthProbe{DB: pool})
		cleanup = pool.Close
		logger.Info("using postgres project store")
	} else {
		store = db.NewMemoryStore()
		logger.Warn("DATABASE_URL not set, using in-memory project store")
	}

	var (
		stageMetrics   projects.StageMetrics
		enqueueMetrics queue.EnqueueRecorder
		pipeline       handlers.PipelineEnqueuer
	)
	if cfg.Observability.EnableMetrics || cfg.AWS.PipelineQueueURL != "" {
		awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if cfg.Observability.EnableMetrics {
			cw := telemetry.NewCloudWatchMetrics(cloudwatch.NewFromConfig(awsCfg), cfg.Observability.MetricNamespace, logger)
			srv.Metrics = cw
			stageMetrics = cw
			enqueueMetrics = cw
		}
		if cfg.AWS.PipelineQueueURL != "" {
			pipeline = queue.NewPipelineQueue(sqs.NewFromConfig(awsCfg), cfg.AWS, enqueueMetrics, logger)
		}
	}

	svc := projects.NewService(store, stageMetrics, logger, nil)
	projectHandler := handlers.NewProjectHandler(svc, srv.Validator, logger)
	designHandler := handlers.NewDesignHandler(svc, pipeline, cfg.Synthesis, srv.Validator, logger)
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars,
		projectHandler.RegisterRoutes,
		designHandler.RegisterRoutes,
	)

	srv.MountRoutes()
	return srv, cleanup, nil
}

// loadAWSConfig loads the SDK configuration for the configured region. A
// custom endpoint (LocalStack) overrides every service endpoint.
func loadAWSConfig(ctx context.Context, c config.AWSConfig) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	if c.EndpointURL != "" {
		awsCfg.BaseEndpoint = aws.String(c.EndpointURL)
	}
	return awsCfg, nil
}

// isLambdaEnvironment returns true if the process is running inside AWS Lambda.
func isLambdaEnvironment() bool {
	_, hasRuntimeAPI := os.LookupEnv("AWS_LAMBDA_RUNTIME_API")
	_, hasServerPort := os.LookupEnv("_LAMBDA_SERVER_PORT")
	return hasRuntimeAPI || hasServerPort
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}
