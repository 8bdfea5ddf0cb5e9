/*
Package runner drives a Callisto program through the whole pipeline: load,
tokenize, parse, evaluate.

Each run gets a UUID. The run ID and file name ride on the context, so every
log line of the run carries them, and they are set as attributes on the
root span. Each stage runs in a child span (callisto.load, callisto.tokenize,
callisto.parse, callisto.evaluate) and its duration is recorded with the
stage's outcome. The metrics collector observes evaluation call by call.

When a run fails, the returned error is the stage's language error with the
file name and a source excerpt attached. If diagnostics are enabled the
tokens and, when parsing succeeded, the syntax tree are dumped into the
diagnostics directory under names derived from the run ID.

Usage:

	r, err := runner.New(runner.Options{Config: cfg, Logger: logger, Tracer: tracer})
	if err != nil {
		return err
	}
	res, err := r.Run(ctx, "hello.cal")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	_ = r.ExportMetrics()
*/
package runner
