// Package queue dispatches full-synthesis jobs to the pipeline worker over SQS.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"archiplan/internal/config"
	"archiplan/internal/types"
)

// SQSSender abstracts the SQS SendMessage operation for testability.
// Production code uses the *sqs.Client from aws-sdk-go-v2.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// EnqueueRecorder counts jobs accepted by the queue.
type EnqueueRecorder interface {
	RecordEnqueue(ctx context.Context, queue string)
}

// PipelineQueue sends PipelineJob messages through a circuit breaker so a
// failing queue is not hammered by every API request.
type PipelineQueue struct {
	client   SQSSender
	queueURL string
	breaker  *gobreaker.CircuitBreaker[*sqs.SendMessageOutput]
	metrics  EnqueueRecorder
	logger   *slog.Logger
	clock    types.Clock
}

// NewPipelineQueue creates a PipelineQueue for the configured queue URL.
// metrics may be nil.
func NewPipelineQueue(client SQSSender, awsCfg config.AWSConfig, metrics EnqueueRecorder, logger *slog.Logger) *PipelineQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineQueue{
		client:   client,
		queueURL: awsCfg.PipelineQueueURL,
		breaker:  newBreaker("sqs-pipeline"),
		metrics:  metrics,
		logger:   logger,
		clock:    types.RealClock{},
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker[*sqs.SendMessageOutput] {
	return gobreaker.NewCircuitBreaker[*sqs.SendMessageOutput](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})
}

// Enqueue asks the worker to run every synthesis stage for projectID with
// the given inputs. The trace id of ctx travels with the job.
func (q *PipelineQueue) Enqueue(ctx context.Context, projectID string, in types.SynthesisInput) (*types.PipelineJob, error) {
	job := &types.PipelineJob{
		JobID:       "job_" + uuid.NewString(),
		ProjectID:   projectID,
		Climate:     in.Climate,
		Style:       in.Style,
		TraceID:     types.GetTraceID(ctx),
		RequestedAt: q.clock.Now(),
	}
	if job.TraceID == "" {
		job.TraceID = uuid.NewString()
	}

	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: failed to marshal PipelineJob: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqsTypes.MessageAttributeValue{
			"project_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(projectID),
			},
			"trace_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(job.TraceID),
			},
		},
	}

	_, err = q.breaker.Execute(func() (*sqs.SendMessageOutput, error) {
		return q.client.SendMessage(ctx, input)
	})
	if err != nil {
		msg := "pipeline queue is unavailable"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			msg = "pipeline queue circuit is open"
		}
		q.logger.ErrorContext(ctx, "pipeline job not sent",
			"project_id", projectID, "queue_url", q.queueURL, "error", err)
		return nil, types.NewAppError(types.ErrCodeUpstreamQueue, msg, err)
	}

	if q.metrics != nil {
		q.metrics.RecordEnqueue(ctx, q.queueURL)
	}
	q.logger.InfoContext(ctx, "pipeline job sent",
		"queue_url", q.queueURL,
		"job_id", job.JobID,
		"project_id", projectID,
		"trace_id", job.TraceID,
	)
	return job, nil
}
