package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pdftools/gateway/pkg/botdetect"
	"pdftools/gateway/pkg/cli"
	"pdftools/gateway/pkg/config"
	"pdftools/gateway/pkg/convert"
	"pdftools/gateway/pkg/server"
	"pdftools/gateway/pkg/telemetry/logging"
	"pdftools/gateway/pkg/telemetry/metrics"

	"github.com/spf13/cobra"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PDF tools server",
	Long: `Start the HTTP server with the specified configuration.

The server runs until it receives SIGINT or SIGTERM, then drains in-flight
requests for at most server.shutdown_timeout.

Examples:
  # Start with defaults
  pdftools serve

  # Start with a config file
  pdftools serve --config /etc/pdftools/config.yaml

  # Override listen address and log level
  pdftools serve --listen 127.0.0.1:9000 --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	slog.SetDefault(logger)

	collector, err := metrics.Init(cfg.Tools.ToolName, &cfg.Telemetry.Metrics)
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("initialize metrics: %w", err))
	}

	detector := botdetect.New(cfg.Tools.BotPatterns)

	srv, err := server.New(server.Options{
		Config:    cfg,
		Logger:    logger,
		Collector: collector,
		Detector:  detector,
		Converter: convert.NewEngine(cfg.Convert.TempDir),
		Build: server.BuildInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		},
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if cfg.Tools.Watch {
		stopWatch, err := watchBotPatterns(ctx, detector, logger)
		if err != nil {
			logger.Warn("config watching disabled", "error", err)
		} else {
			defer stopWatch()
		}
	}

	logger.Info("PDF tools server configured",
		"version", Version,
		"tool", cfg.Tools.ToolName,
		"config", cfgFile,
		"bot_patterns", len(detector.Patterns()),
	)

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

// watchBotPatterns reloads the configuration file whenever it changes and
// swaps the crawler table of detector. Other settings take effect on restart.
func watchBotPatterns(ctx context.Context, detector *botdetect.Detector, logger *slog.Logger) (func(), error) {
	if cfgFile == "" {
		return nil, errors.New("tools.watch requires --config")
	}

	watcher, err := config.NewFileWatcher(cfgFile, 0, logger)
	if err != nil {
		return nil, err
	}

	go func() {
		err := watcher.Watch(ctx, func() error {
			cfg, err := config.ReloadConfig(cfgFile)
			if err != nil {
				return err
			}
			detector.Replace(cfg.Tools.BotPatterns)
			logger.Info("bot patterns reloaded", "count", len(cfg.Tools.BotPatterns))
			return nil
		})
		if err != nil {
			logger.Error("config watcher failed", "error", err)
		}
	}()

	return func() { _ = watcher.Stop() }, nil
}
