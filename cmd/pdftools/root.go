package main

import (
	"fmt"
	"os"

	"pdftools/gateway/pkg/cli"
	"pdftools/gateway/pkg/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "pdftools",
	Short: "PDF Tools API server",
	Long: `pdftools serves a small HTTP API for working with PDF documents:

  - compress a PDF (low, medium or high quality)
  - merge two or more PDFs
  - convert a PDF to a Word document

Every request is counted and timed in Prometheus metrics labelled with the
tool name (TOOL_NAME), and visits from known crawlers are counted separately.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Variables from the .env file are visible to the environment
		// overrides applied while loading the configuration.
		if err := config.LoadDotEnv(envFile); err != nil {
			return cli.NewConfigError(envFile, err)
		}
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration (ignored when missing)")
}
