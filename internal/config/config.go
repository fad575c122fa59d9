// Package config defines the process configuration for the archiplan API and
// pipeline worker. Configuration is loaded once at startup and is immutable
// thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any invalid value causes startup to fail.
package config

import (
	"time"

	"archiplan/internal/types"
)

// SecretString is an alias for types.SecretString so that secrets such as
// DATABASE_URL are redacted when the config is logged.
type SecretString = types.SecretString

// Config is the top-level configuration struct.
// Sub-components receive only the config subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"archiplan"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server        ServerConfig
	Database      DatabaseConfig
	AWS           AWSConfig
	Security      SecurityConfig
	Observability ObservabilityConfig
	Synthesis     SynthesisConfig

	// Injected via ldflags, not Env
	Build BuildInfo
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"29s" validate:"gt=0"`
}

// DatabaseConfig holds the Postgres connection and pool tuning parameters.
// An empty URL selects the in-memory project store.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL"`

	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10" validate:"gte=1"`
	MinConns        int32         `envconfig:"DB_MIN_CONNS" default:"2" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
}

// AWSConfig holds AWS resource identifiers and regional configuration.
type AWSConfig struct {
	Region string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Empty disables the asynchronous pipeline endpoint.
	PipelineQueueURL string `envconfig:"SQS_PIPELINE_QUEUE" validate:"omitempty,url"`

	// LocalStack Support (Empty in Prod)
	EndpointURL string `envconfig:"AWS_ENDPOINT_URL" validate:"omitempty,url"`
}

// SecurityConfig holds CORS settings.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"Archiplan"`
	EnableMetrics   bool   `envconfig:"ENABLE_METRICS" default:"false"`
}

// SynthesisConfig holds defaults applied to cost estimation requests that do
// not name a region or currency.
type SynthesisConfig struct {
	DefaultRegion   string `envconfig:"DEFAULT_REGION" default:"north_america"`
	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"USD" validate:"len=3"`
}

// UsePostgres reports whether a database URL is configured.
func (c *Config) UsePostgres() bool {
	return c.Database.URL.IsSet()
}

// BuildInfo holds build-time metadata injected via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
