/*
Package cli provides command-line interface utilities for the callisto
command.

Output Formatting:

Reports such as the result of "callisto check" can be printed as text, JSON
or YAML:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, report); err != nil {
		return err
	}

Progress Reporting:

When checking many files, a status line with the pass/fail tally can be
drawn on stderr:

	progress := cli.NewCheckProgress(nil, len(files))
	for _, f := range files {
		progress.Begin(f)
		progress.Done(check(f))
	}
	passed, failed := progress.Finish()

Signal Handling:

A program stuck in a loop is stopped by cancelling its context on
SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

ExitCode maps command errors to 0 (success), 1 (failure) or 2 (bad
configuration or usage).
*/
package cli
