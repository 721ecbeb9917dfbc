/*
Package cli provides command-line helpers used by the pdftools command.

Output Formatting:

Commands that print structured results accept --output text|json|yaml:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, cfg); err != nil {
		return err
	}

Errors:

ConfigError and CommandError carry the failing file or command. ExitCode maps
them to the process exit status, 2 for configuration problems and 1 otherwise.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	// ctx is cancelled on the first signal
*/
package cli
