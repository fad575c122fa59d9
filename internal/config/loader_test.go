package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"APP_ENV", "SERVICE_NAME", "LOG_LEVEL",
	"PORT", "REQUEST_TIMEOUT",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_MAX_CONN_LIFETIME",
	"AWS_REGION", "SQS_PIPELINE_QUEUE", "AWS_ENDPOINT_URL",
	"CORS_ALLOWED_ORIGINS",
	"METRIC_NAMESPACE", "ENABLE_METRICS",
	"DEFAULT_REGION", "DEFAULT_CURRENCY",
}

// clearConfigEnv unsets every variable the loader reads. t.Setenv restores
// the original values when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

// noDotenv returns a path that does not exist so tests never pick up a
// developer's .env file.
func noDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(noDotenv(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Environment != "local" {
		t.Errorf("Environment = %q, want local", cfg.Environment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 29*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 29s", cfg.Server.RequestTimeout)
	}
	if cfg.UsePostgres() {
		t.Error("UsePostgres() = true without DATABASE_URL")
	}
	if cfg.Database.MaxConns != 10 || cfg.Database.MinConns != 2 {
		t.Errorf("pool = %d/%d, want 10/2", cfg.Database.MaxConns, cfg.Database.MinConns)
	}
	if cfg.Database.MaxConnLifetime != 30*time.Minute {
		t.Errorf("MaxConnLifetime = %v, want 30m", cfg.Database.MaxConnLifetime)
	}
	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
	if cfg.AWS.PipelineQueueURL != "" {
		t.Errorf("AWS.PipelineQueueURL = %q, want empty", cfg.AWS.PipelineQueueURL)
	}
	if len(cfg.Security.CorsAllowedOrigins) != 1 || cfg.Security.CorsAllowedOrigins[0] != "*" {
		t.Errorf("CorsAllowedOrigins = %v", cfg.Security.CorsAllowedOrigins)
	}
	if cfg.Observability.MetricNamespace != "Archiplan" || cfg.Observability.EnableMetrics {
		t.Errorf("Observability = %+v", cfg.Observability)
	}
	if cfg.Synthesis.DefaultRegion != "north_america" || cfg.Synthesis.DefaultCurrency != "USD" {
		t.Errorf("Synthesis = %+v", cfg.Synthesis)
	}
	if cfg.Build.Version != "dev" {
		t.Errorf("Build.Version = %q, want dev", cfg.Build.Version)
	}
	if time.Local != time.UTC {
		t.Errorf("time.Local = %v, want UTC", time.Local)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/archiplan")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("SQS_PIPELINE_QUEUE", "https://sqs.us-east-1.amazonaws.com/123/pipeline")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("DEFAULT_CURRENCY", "EUR")

	cfg, err := LoadConfig(noDotenv(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.UsePostgres() {
		t.Error("UsePostgres() = false with DATABASE_URL set")
	}
	if cfg.Database.URL.String() == "postgres://u:p@db:5432/archiplan" {
		t.Error("DATABASE_URL should be redacted when formatted")
	}
	if cfg.Database.MaxConns != 20 || cfg.Database.MinConns != 5 {
		t.Errorf("pool = %d/%d, want 20/5", cfg.Database.MaxConns, cfg.Database.MinConns)
	}
	if got := cfg.Security.CorsAllowedOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("CorsAllowedOrigins = %v", got)
	}
	if !cfg.Observability.EnableMetrics {
		t.Error("EnableMetrics = false")
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Synthesis.DefaultCurrency != "EUR" {
		t.Errorf("DefaultCurrency = %q", cfg.Synthesis.DefaultCurrency)
	}
}

func TestLoadConfigValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown environment", "APP_ENV", "qa"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"queue is not a url", "SQS_PIPELINE_QUEUE", "pipeline"},
		{"min conns above max", "DB_MIN_CONNS", "50"},
		{"currency code length", "DEFAULT_CURRENCY", "EURO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig(noDotenv(t))
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if cfgErr.Type != ErrValidation {
				t.Errorf("Type = %q, want %q", cfgErr.Type, ErrValidation)
			}
		})
	}
}

func TestLoadConfigParsingFailure(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_MAX_CONNS", "many")

	_, err := LoadConfig(noDotenv(t))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if cfgErr.Type != ErrParsing {
		t.Errorf("Type = %q, want %q", cfgErr.Type, ErrParsing)
	}
}

func TestLoadConfigDotenvFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9090\nDEFAULT_REGION=europe\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	// Direct environment wins over the file.
	t.Setenv("DEFAULT_REGION", "asia")
	t.Cleanup(func() { os.Unsetenv("PORT") })

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090 from dotenv", cfg.Server.Port)
	}
	if cfg.Synthesis.DefaultRegion != "asia" {
		t.Errorf("DefaultRegion = %q, want asia from env", cfg.Synthesis.DefaultRegion)
	}
}

func TestConfigError(t *testing.T) {
	inner := errors.New("boom")
	withErr := &ConfigError{Type: ErrParsing, Message: "bad value", Err: inner}
	if got := withErr.Error(); !strings.Contains(got, "[PARSING_FAILED] bad value: boom") {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(withErr, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}

	bare := &ConfigError{Type: ErrValidation, Message: "invalid"}
	if got := bare.Error(); got != "[VALIDATION_FAILED] invalid" {
		t.Errorf("Error() = %q", got)
	}
	if bare.Unwrap() != nil {
		t.Error("Unwrap() should be nil")
	}
}
