/*
Package cli provides command-line interface utilities for the provconf command.

Output Formatting:

Command results are printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Values implementing TextRenderer control their own text rendering.

Progress Reporting:

Validating a directory of documents reports progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(len(docs))
	for i, doc := range docs {
		// validate doc
		progress.Update(i + 1)
	}
	progress.Finish()

Exit Codes:

ExitCode maps a command error to the process exit status: 0 on success,
1 when validation found errors, 2 for usage, configuration and I/O errors.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
