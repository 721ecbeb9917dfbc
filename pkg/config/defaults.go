package config

import (
	"time"

	"pdftools/gateway/pkg/botdetect"
)

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "0.0.0.0:8000"
	DefaultReadTimeout     = 60 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Tools defaults
	DefaultToolName = "pdf-tools"

	// Convert defaults
	DefaultMaxUploadBytes = int64(100 * 1024 * 1024)
	DefaultMaxMergeFiles  = 20
	DefaultMaxConcurrent  = 16

	// Telemetry defaults
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "json"
	DefaultMetricsEnabled      = true
	DefaultMetricsPath         = "/metrics"
	DefaultMetricsMaxEndpoints = 100
)

// DefaultBotPatterns is the ordered crawler table used when none is configured.
var DefaultBotPatterns = botdetect.DefaultPatterns

// Default returns a configuration populated with default values. Loading a
// file unmarshals on top of this value, so booleans that default to true can
// still be switched off explicitly.
func Default() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. It never
// overrides a value that has been set.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Tools defaults
	if cfg.Tools.ToolName == "" {
		cfg.Tools.ToolName = DefaultToolName
	}
	if len(cfg.Tools.BotPatterns) == 0 {
		cfg.Tools.BotPatterns = append([]string(nil), DefaultBotPatterns...)
	}

	// Convert defaults
	if cfg.Convert.MaxUploadBytes == 0 {
		cfg.Convert.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Convert.MaxMergeFiles == 0 {
		cfg.Convert.MaxMergeFiles = DefaultMaxMergeFiles
	}
	if cfg.Convert.MaxConcurrent == 0 {
		cfg.Convert.MaxConcurrent = DefaultMaxConcurrent
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.MaxEndpoints == 0 {
		cfg.Telemetry.Metrics.MaxEndpoints = DefaultMetricsMaxEndpoints
	}
}
