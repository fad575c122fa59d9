package types

// Telemetry metric names for CloudWatch.
// All components MUST use these constants.
const (
	// Metric Names
	MetricAPILatency          = "APILatency"
	MetricAPIRequest          = "APIRequest"
	MetricStageDuration       = "SynthesisStageDuration"
	MetricStageFailure        = "SynthesisStageFailure"
	MetricModificationApplied = "ModificationApplied"
	MetricPipelineEnqueued    = "PipelineJobEnqueued"

	// Dimension Keys
	DimEndpoint   = "Endpoint"
	DimMethod     = "Method"
	DimStatus     = "Status"
	DimDiscipline = "Discipline"
	DimQueue      = "Queue"

	// Metric Namespace
	MetricNamespace = "Archiplan"
)
