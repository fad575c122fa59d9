// Package main is the entrypoint for the Pipeline Worker Lambda function.
//
// The worker consumes PipelineJob messages from the pipeline SQS queue and
// runs every synthesis stage (2D, 3D, structural, MEP) for the named project
// through projects.Service.GenerateAll, persisting the result in one write.
//
// Lambda SQS integration uses partial batch responses: a message whose
// synthesis fails transiently is reported in BatchItemFailures so SQS
// redelivers only that message. Malformed payloads and jobs for deleted
// projects are acknowledged and logged; retrying them cannot succeed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"archiplan/internal/config"
	"archiplan/internal/db"
	"archiplan/internal/projects"
	"archiplan/internal/telemetry"
	"archiplan/internal/types"
)

// Synthesizer runs full synthesis for a project.
type Synthesizer interface {
	GenerateAll(ctx context.Context, id string, in types.SynthesisInput) (*types.Project, error)
}

// Handler holds the dependencies for the pipeline worker Lambda handler.
type Handler struct {
	svc    Synthesizer
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(svc Synthesizer, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger, now: time.Now}
}

// Handle processes a batch of pipeline jobs. Each record is handled
// independently; only retryable failures are returned to SQS.
func (h *Handler) Handle(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	response := events.SQSEventResponse{}

	for _, record := range sqsEvent.Records {
		if err := h.processMessage(ctx, record); err != nil {
			h.logger.Error("failed to process pipeline job",
				"message_id", record.MessageId,
				"error", err.Error(),
			)
			response.BatchItemFailures = append(response.BatchItemFailures,
				events.SQSBatchItemFailure{ItemIdentifier: record.MessageId},
			)
		}
	}

	return response, nil
}

func (h *Handler) processMessage(ctx context.Context, record events.SQSMessage) error {
	var job types.PipelineJob
	if err := json.Unmarshal([]byte(record.Body), &job); err != nil || job.ProjectID == "" {
		h.logger.Error("discarding malformed pipeline job",
			"message_id", record.MessageId,
			"error", err,
		)
		return nil
	}

	logger := h.logger.With(
		"job_id", job.JobID,
		"project_id", job.ProjectID,
		"trace_id", job.TraceID,
	)
	if sent, ok := record.Attributes["SentTimestamp"]; ok {
		if ms, err := strconv.ParseInt(sent, 10, 64); err == nil {
			logger = logger.With("queue_lag", h.now().Sub(time.UnixMilli(ms)).String())
		}
	}
	logger.Info("processing pipeline job")

	if job.TraceID != "" {
		ctx = types.WithTraceID(ctx, job.TraceID)
	}

	project, err := h.svc.GenerateAll(ctx, job.ProjectID, job.Input())
	switch {
	case err == nil:
		logger.Info("pipeline job complete",
			"status", project.Status,
			"version", project.Version,
		)
		return nil
	case types.IsCode(err, types.ErrCodeNotFoundProject):
		logger.Warn("project no longer exists, dropping job")
		return nil
	case types.IsCode(err, types.ErrCodePrerequisiteMissing):
		logger.Warn("pipeline prerequisites not met, dropping job", "error", err)
		return nil
	default:
		return fmt.Errorf("synthesize project %s: %w", job.ProjectID, err)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel, os.Stdout)
	logger.Info("pipeline worker initializing (cold start)", "build", cfg.Build)

	ctx := context.Background()

	var store types.ProjectStore
	if cfg.UsePostgres() {
		pool, err := db.Connect(ctx, cfg.Database.URL.Unmask(), db.PoolConfig{
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
		})
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = db.NewProjectRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory project store")
		store = db.NewMemoryStore()
	}

	var metrics projects.StageMetrics
	if cfg.Observability.EnableMetrics {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			logger.Error("failed to load AWS SDK config", "error", err)
			os.Exit(1)
		}
		metrics = telemetry.NewCloudWatchMetrics(cloudwatch.NewFromConfig(awsCfg), cfg.Observability.MetricNamespace, logger)
	}

	handler := NewHandler(projects.NewService(store, metrics, logger, nil), logger)

	// Local mode: read a JSON SQS event from stdin instead of starting the
	// Lambda runtime.
	//	echo '{"Records":[{"messageId":"1","body":"{...}"}]}' | go run ./cmd/pipeline-worker
	if cfg.Environment == "local" {
		if err := runLocal(ctx, handler, os.Stdin, logger); err != nil {
			logger.Error("local run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	lambda.Start(handler.Handle)
}

// newLogger creates a JSON slog.Logger writing to w at the given log level.
func newLogger(level string, w io.Writer) *slog.Logger {
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

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func runLocal(ctx context.Context, h *Handler, in io.Reader, logger *slog.Logger) error {
	payload, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(payload) == 0 {
		return fmt.Errorf("no input received on stdin")
	}

	var sqsEvent events.SQSEvent
	if err := json.Unmarshal(payload, &sqsEvent); err != nil {
		return fmt.Errorf("parse SQS event: %w", err)
	}

	response, err := h.Handle(ctx, sqsEvent)
	if err != nil {
		return err
	}
	logger.Info("handler execution completed",
		"records_processed", len(sqsEvent.Records),
		"failures", len(response.BatchItemFailures),
	)
	return nil
}
