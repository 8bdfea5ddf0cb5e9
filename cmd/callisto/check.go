package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/runner"
)

var checkFlags struct {
	format   string
	progress bool
}

var checkCmd = &cobra.Command{
	Use:   "check FILE|DIR...",
	Short: "Check programs for errors without running them",
	Long: `Tokenize and parse Callisto programs, reporting lexical and syntax errors
with a source excerpt and, where one is close enough, a suggested fix.

Directories are searched recursively for files with the configured extension
(.cal by default). The command exits non-zero when any file fails.

Examples:
  # Check one file
  callisto check hello.cal

  # Check a directory
  callisto check examples/

  # JSON output for CI/CD
  callisto check examples/ --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkPrograms,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.format, "format", "f", "text", "output format: text, json, yaml")
	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show progress on stderr")
}

// CheckReport is the result of checking a set of files.
type CheckReport struct {
	Files  []FileReport `json:"files" yaml:"files"`
	Failed int          `json:"failed" yaml:"failed"`
}

// FileReport is the result of checking one file.
type FileReport struct {
	File      string      `json:"file" yaml:"file"`
	Valid     bool        `json:"valid" yaml:"valid"`
	Tokens    int         `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Functions int         `json:"functions,omitempty" yaml:"functions,omitempty"`
	Error     *CheckError `json:"error,omitempty" yaml:"error,omitempty"`

	// detail is the full rendering of the error for text output.
	detail string
}

// CheckError describes the error that made a file fail.
type CheckError struct {
	Kind       string `json:"kind" yaml:"kind"`
	Message    string `json:"message" yaml:"message"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column     int    `json:"column,omitempty" yaml:"column,omitempty"`
	Construct  string `json:"construct,omitempty" yaml:"construct,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// String renders the report for text output.
func (r CheckReport) String() string {
	var sb strings.Builder
	for _, f := range r.Files {
		if f.Valid {
			fmt.Fprintf(&sb, "✓ %s (%d functions, %d tokens)\n", f.File, f.Functions, f.Tokens)
			continue
		}
		fmt.Fprintf(&sb, "✗ %s\n", f.File)
		for _, line := range strings.Split(f.detail, "\n") {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}
	sb.WriteString("\nSummary:\n")
	fmt.Fprintf(&sb, "  %d file(s) checked, %d failed", len(r.Files), r.Failed)
	return sb.String()
}

func checkPrograms(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(checkFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Diagnostics.Enabled = false

	ctx, s, err := newSetup(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer s.close()

	r, err := runner.New(runner.Options{Config: cfg, Logger: s.logger, Tracer: s.tracer})
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	files, err := r.Loader().Discover(args)
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	if len(files) == 0 {
		return cli.NewCommandError("check", fmt.Errorf("no %s files found", cfg.Source.Extension))
	}

	var progress *cli.CheckProgress
	if checkFlags.progress {
		progress = cli.NewCheckProgress(cmd.ErrOrStderr(), len(files))
	}

	report := CheckReport{Files: make([]FileReport, 0, len(files))}
	errs := calerrors.NewErrorList()

	for _, file := range files {
		if progress != nil {
			progress.Begin(file)
		}
		res, err := r.Check(ctx, file)

		fr := FileReport{File: file, Valid: err == nil, Tokens: len(res.Tokens)}
		if res.Program != nil {
			fr.Functions = len(res.Program.Functions)
		}
		if err != nil {
			report.Failed++
			fr.detail = err.Error()
			fr.Error = &CheckError{Kind: "internal", Message: err.Error()}
			if e, ok := calerrors.As(err); ok {
				errs.Add(e)
				fr.Error = &CheckError{
					Kind:       string(e.Kind),
					Message:    e.Message,
					Line:       e.Pos.Line,
					Column:     e.Pos.Column,
					Construct:  e.Construct,
					Suggestion: e.Suggestion,
				}
			}
		}
		report.Files = append(report.Files, fr)

		if progress != nil {
			progress.Done(err)
		}
	}

	if progress != nil {
		progress.Finish()
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError("check", err)
	}

	if report.Failed > 0 {
		s.logger.Debug("check failed", "files", len(files), "failed", report.Failed, "language_errors", errs.Count())
		return cli.NewCommandError("check", fmt.Errorf("%d of %d files failed", report.Failed, len(files)))
	}
	return nil
}
