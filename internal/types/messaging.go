package types

import "time"

// PipelineJob is the SQS payload asking a worker to run full synthesis for a
// project. Climate and style are resolved upstream and travel with the job so
// the worker performs no network lookups.
type PipelineJob struct {
	JobID       string         `json:"job_id"`
	ProjectID   string         `json:"project_id"`
	Climate     ClimateProfile `json:"climate"`
	Style       StyleProfile   `json:"style"`
	TraceID     string         `json:"trace_id"`
	RequestedAt time.Time      `json:"requested_at"`
}

// Input returns the synthesis input carried by the job.
func (j PipelineJob) Input() SynthesisInput {
	return SynthesisInput{Climate: j.Climate, Style: j.Style}
}
