package diagnostics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"mercator-hq/callisto/pkg/cal/ast"
	"mercator-hq/callisto/pkg/cal/token"
	"mercator-hq/callisto/pkg/config"
)

// DumpError reports a dump artifact that could not be written.
type DumpError struct {
	Artifact string // "tokens" or "ast"
	Path     string
	Cause    error
}

// Error implements the error interface.
func (e *DumpError) Error() string {
	return fmt.Sprintf("dump error [artifact=%s, path=%s]: %v", e.Artifact, e.Path, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DumpError) Unwrap() error {
	return e.Cause
}

// Dumper writes the token list and syntax tree of a failed run into a
// directory. File names carry the run ID so dumps from successive runs do
// not overwrite each other.
type Dumper struct {
	dir    string
	format Format
	logger *slog.Logger
}

// NewDumper creates a dumper from the diagnostics configuration. It returns
// nil when dumps are disabled; a nil *Dumper ignores Dump calls.
func NewDumper(cfg *config.DiagnosticsConfig, logger *slog.Logger) (*Dumper, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	dir := cfg.Dir
	if dir == "" {
		dir = config.DefaultDiagnosticsDir
	}

	return &Dumper{dir: dir, format: format, logger: logger}, nil
}

// Dir returns the directory dumps are written into.
func (d *Dumper) Dir() string {
	if d == nil {
		return ""
	}
	return d.dir
}

// Dump writes the tokens and, when prog is non-nil, the syntax tree. It
// returns the paths written. Either input may be empty; nothing is written
// for a missing artifact.
func (d *Dumper) Dump(ctx context.Context, runID string, toks []token.Token, prog *ast.Program) ([]string, error) {
	if d == nil || (toks == nil && prog == nil) {
		return nil, nil
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dump directory %q: %w", d.dir, err)
	}

	var written []string

	if toks != nil {
		path := filepath.Join(d.dir, "tokens_"+runID+d.format.Extension())
		if err := writeFile(path, func(w io.Writer) error { return WriteTokens(w, toks, d.format) }); err != nil {
			return written, &DumpError{Artifact: "tokens", Path: path, Cause: err}
		}
		written = append(written, path)
	}

	if prog != nil {
		path := filepath.Join(d.dir, "ast_"+runID+".txt")
		if err := writeFile(path, func(w io.Writer) error { return PrintAST(w, prog) }); err != nil {
			return written, &DumpError{Artifact: "ast", Path: path, Cause: err}
		}
		written = append(written, path)
	}

	d.logger.InfoContext(ctx, "diagnostics written",
		"dir", d.dir,
		"files", len(written),
	)

	return written, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
