// Package config provides configuration management for the PDF tools gateway.
//
// Configuration is read from an optional YAML file, overlaid with environment
// variables, and validated before use.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("pdftools.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("pdftools.yaml")
//
// Passing an empty path to either function starts from the defaults.
// LoadDotEnv can be called first to populate the process environment from a
// .env file.
//
// # Environment Variable Overrides
//
// TOOL_NAME sets tools.tool_name, the value of the "tool" label carried by
// every metric series. All other variables use the PDFTOOLS_ prefix:
//
//   - PDFTOOLS_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - PDFTOOLS_BOT_PATTERNS overrides tools.bot_patterns (comma separated)
//   - PDFTOOLS_CONVERT_MAX_UPLOAD_BYTES overrides convert.max_upload_bytes
//   - PDFTOOLS_CONVERT_MAX_CONCURRENT overrides convert.max_concurrent
//   - PDFTOOLS_LOG_LEVEL overrides telemetry.logging.level
//   - PDFTOOLS_METRICS_ENABLED overrides telemetry.metrics.enabled
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Hot Reload
//
// When tools.watch is set, FileWatcher observes the configuration file and
// invokes a reload callback after a quiet period. The serve command uses it
// to swap the crawler pattern table without a restart.
package config
