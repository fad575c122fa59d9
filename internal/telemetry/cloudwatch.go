// Package telemetry publishes API and synthesis metrics to AWS CloudWatch.
//
// Metrics emitted:
//   - APILatency, APIRequest: Dims {Method, Endpoint, Status}
//   - SynthesisStageDuration: Dims {Discipline}
//   - SynthesisStageFailure: Dims {Discipline}, only when a stage fails
//   - ModificationApplied: Dims {Discipline, Action}
//   - PipelineJobEnqueued: Dims {Queue}
//
// Publishing failures are logged and never returned; metrics must not fail a
// request or a synthesis run.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"archiplan/internal/types"
)

// requestMetricTimeout bounds PutMetricData for request metrics, which are
// recorded after the request context has ended.
const requestMetricTimeout = 2 * time.Second

// dimAction is only used by the modification counter.
const dimAction = "Action"

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchMetrics records metrics into a single CloudWatch namespace.
type CloudWatchMetrics struct {
	client    CloudWatchClient
	namespace string
	logger    *slog.Logger
}

// NewCloudWatchMetrics creates a recorder for namespace. An empty namespace
// selects types.MetricNamespace.
func NewCloudWatchMetrics(client CloudWatchClient, namespace string, logger *slog.Logger) *CloudWatchMetrics {
	if namespace == "" {
		namespace = types.MetricNamespace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CloudWatchMetrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordRequest emits latency and count for one API request.
func (m *CloudWatchMetrics) RecordRequest(method, endpoint, status string, duration time.Duration) {
	dims := []cwtypes.Dimension{
		dimension(types.DimMethod, method),
		dimension(types.DimEndpoint, endpoint),
		dimension(types.DimStatus, status),
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestMetricTimeout)
	defer cancel()

	m.put(ctx, "request",
		cwtypes.MetricDatum{
			MetricName: aws.String(types.MetricAPILatency),
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       cwtypes.StandardUnitMilliseconds,
			Dimensions: dims,
		},
		cwtypes.MetricDatum{
			MetricName: aws.String(types.MetricAPIRequest),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: dims,
		},
	)
}

// RecordStage emits the duration of a synthesis stage, plus a failure count
// when err is non-nil.
func (m *CloudWatchMetrics) RecordStage(ctx context.Context, discipline types.Discipline, duration time.Duration, err error) {
	dims := []cwtypes.Dimension{dimension(types.DimDiscipline, string(discipline))}

	data := []cwtypes.MetricDatum{{
		MetricName: aws.String(types.MetricStageDuration),
		Value:      aws.Float64(float64(duration.Milliseconds())),
		Unit:       cwtypes.StandardUnitMilliseconds,
		Dimensions: dims,
	}}
	if err != nil {
		data = append(data, cwtypes.MetricDatum{
			MetricName: aws.String(types.MetricStageFailure),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: dims,
		})
	}

	m.put(ctx, "stage", data...)
}

// RecordModification counts one applied modification.
func (m *CloudWatchMetrics) RecordModification(ctx context.Context, discipline types.Discipline, action types.Action) {
	m.put(ctx, "modification", cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricModificationApplied),
		Value:      aws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: []cwtypes.Dimension{
			dimension(types.DimDiscipline, string(discipline)),
			dimension(dimAction, string(action)),
		},
	})
}

// RecordEnqueue counts one pipeline job sent to queue.
func (m *CloudWatchMetrics) RecordEnqueue(ctx context.Context, queue string) {
	m.put(ctx, "enqueue", cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricPipelineEnqueued),
		Value:      aws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: []cwtypes.Dimension{dimension(types.DimQueue, queue)},
	})
}

func (m *CloudWatchMetrics) put(ctx context.Context, kind string, data ...cwtypes.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Error("failed to record "+kind+" metric",
			"error", err.Error(),
			"namespace", m.namespace,
		)
	}
}

func dimension(name, value string) cwtypes.Dimension {
	return cwtypes.Dimension{Name: aws.String(name), Value: aws.String(value)}
}
