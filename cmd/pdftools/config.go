package main

import (
	"errors"
	"fmt"

	"pdftools/gateway/pkg/cli"
	"pdftools/gateway/pkg/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configValidateOutput string

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and print the effective values",
	Long: `Load the configuration the same way serve does (.env file, config file,
defaults, environment overrides), validate it and print the result.

Exits with status 2 when the configuration is invalid.

Examples:
  pdftools config validate --config config.yaml
  TOOL_NAME=pdf-compress pdftools config validate -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseOutputFormat(configValidateOutput)
		if err != nil {
			return err
		}
		if format == cli.FormatJSON {
			// Durations only have a readable form in YAML.
			return errors.New("configuration output supports text and yaml")
		}

		cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return cli.NewConfigError(cfgFile, err)
		}

		if format == cli.FormatText {
			source := cfgFile
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration valid (%s)\n", source)
			format = cli.FormatYAML
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)

	configValidateCmd.Flags().StringVarP(&configValidateOutput, "output", "o", "text", "output format: text, yaml")
}
