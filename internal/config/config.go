// Package config holds the structured, koanf-backed configuration for the
// optimizer service: application identity, HTTP transport, logging,
// metrics, tracing, and the numeric tolerances the solving engine uses.
package config

import "fmt"

// Config is the fully assembled, validated application configuration.
type Config struct {
	App       AppConfig       `koanf:"app"`
	HTTP      HTTPConfig      `koanf:"http"`
	Log       LogConfig       `koanf:"log"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Tracing   TracingConfig   `koanf:"tracing"`
	Optimizer OptimizerConfig `koanf:"optimizer"`
}

// AppConfig identifies the running process.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	Debug       bool   `koanf:"debug"`
}

// HTTPConfig controls the REST listener and its CORS policy.
type HTTPConfig struct {
	Port            int        `koanf:"port"`
	BasePath        string     `koanf:"base_path"`
	ReadTimeout     int        `koanf:"read_timeout_seconds"`
	WriteTimeout    int        `koanf:"write_timeout_seconds"`
	ShutdownTimeout int        `koanf:"shutdown_timeout_seconds"`
	CORS            CORSConfig `koanf:"cors"`
}

// CORSConfig mirrors the cross-origin policy knobs.
type CORSConfig struct {
	Enabled          bool     `koanf:"enabled"`
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

// LogConfig configures the slog + lumberjack logging pipeline.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// TracingConfig controls the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled     bool    `koanf:"enabled"`
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// OptimizerConfig holds the numeric tolerances shared by every solve.
type OptimizerConfig struct {
	PlanValueClamp     float64 `koanf:"plan_value_clamp"`
	FeasibilityTol     float64 `koanf:"feasibility_tolerance"`
	ReconciliationTol  float64 `koanf:"reconciliation_tolerance"`
	DefaultTimeoutSecs int     `koanf:"default_timeout_seconds"`
	MaxBranchAndBound  int     `koanf:"max_branch_and_bound_nodes"`
}

// Validate checks cross-field invariants that a schema alone cannot express.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, "http.port must be between 1 and 65535")
	}
	if c.Optimizer.PlanValueClamp < 0 {
		errs = append(errs, "optimizer.plan_value_clamp must be non-negative")
	}
	if c.Optimizer.FeasibilityTol <= 0 {
		errs = append(errs, "optimizer.feasibility_tolerance must be positive")
	}
	if c.Optimizer.ReconciliationTol <= 0 {
		errs = append(errs, "optimizer.reconciliation_tolerance must be positive")
	}
	if c.Optimizer.MaxBranchAndBound <= 0 {
		errs = append(errs, "optimizer.max_branch_and_bound_nodes must be positive")
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("invalid configuration: %s", errs[0])
	default:
		return fmt.Errorf("invalid configuration: %d issues, first: %s", len(errs), errs[0])
	}
}

// IsDevelopment reports whether the app is running in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction reports whether the app is running in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
