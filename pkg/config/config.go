package config

import "time"

// Config is the root configuration structure for the PDF tools gateway.
// It contains the HTTP server settings, tool identity and bot detection,
// conversion limits, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and header limits.
	Server ServerConfig `yaml:"server" env:", prefix=PDFTOOLS_SERVER_"`

	// Tools contains the tool identity attached to every metric series and
	// the crawler pattern table used by the instrumentation middleware.
	Tools ToolsConfig `yaml:"tools"`

	// Convert contains limits applied to the conversion endpoints.
	Convert ConvertConfig `yaml:"convert" env:", prefix=PDFTOOLS_CONVERT_"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8000", "0.0.0.0:8000").
	// Default: "0.0.0.0:8000"
	ListenAddress string `yaml:"listen_address" env:"LISTEN_ADDRESS, overwrite"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including uploaded files.
	// Default: 60s
	ReadTimeout time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT, overwrite"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Conversions run inside this window.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT, overwrite"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT, overwrite"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT, overwrite"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes" env:"MAX_HEADER_BYTES, overwrite"`
}

// ToolsConfig identifies this deployment and configures crawler detection.
type ToolsConfig struct {
	// ToolName becomes the "tool" label on every metric series. Read from
	// TOOL_NAME.
	// Default: "pdf-tools"
	ToolName string `yaml:"tool_name" env:"TOOL_NAME, overwrite"`

	// BotPatterns is the ordered crawler table. The first pattern contained
	// in a User-Agent (case-insensitive) wins.
	// Default: Googlebot, bingbot, Baiduspider, YandexBot, DuckDuckBot
	BotPatterns []string `yaml:"bot_patterns" env:"PDFTOOLS_BOT_PATTERNS, overwrite"`

	// Watch reloads BotPatterns when the configuration file changes.
	// Default: false
	Watch bool `yaml:"watch" env:"PDFTOOLS_WATCH_CONFIG, overwrite"`
}

// ConvertConfig contains limits for the conversion endpoints.
type ConvertConfig struct {
	// MaxUploadBytes caps the size of a single request body.
	// Default: 104857600 (100MiB)
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES, overwrite"`

	// MaxMergeFiles caps the number of files accepted by the merge endpoint.
	// Default: 20
	MaxMergeFiles int `yaml:"max_merge_files" env:"MAX_MERGE_FILES, overwrite"`

	// MaxConcurrent caps the number of conversions running at once; further
	// requests answer 503. A negative value removes the cap.
	// Default: 16
	MaxConcurrent int `yaml:"max_concurrent" env:"MAX_CONCURRENT, overwrite"`

	// TempDir is where scratch directories for text extraction are created.
	// Empty means os.TempDir().
	TempDir string `yaml:"temp_dir" env:"TEMP_DIR, overwrite"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" env:", prefix=PDFTOOLS_LOG_"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics" env:", prefix=PDFTOOLS_METRICS_"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" env:"LEVEL, overwrite"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format" env:"FORMAT, overwrite"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source" env:"ADD_SOURCE, overwrite"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active. When disabled the
	// collector still exists but records nothing.
	// Default: true
	Enabled bool `yaml:"enabled" env:"ENABLED, overwrite"`

	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Default: "/metrics"
	Path string `yaml:"path" env:"PATH, overwrite"`

	// MaxEndpoints caps the number of distinct endpoint label values.
	// Default: 100
	MaxEndpoints int `yaml:"max_endpoints" env:"MAX_ENDPOINTS, overwrite"`
}
