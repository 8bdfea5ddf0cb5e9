package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors returned by the loader.
var (
	// ErrExtension is returned for a file without the configured extension.
	ErrExtension = errors.New("unexpected file extension")

	// ErrTooLarge is returned for a file over the configured size limit.
	ErrTooLarge = errors.New("file too large")
)

// Default loader settings.
const (
	DefaultExtension   = ".cal"
	DefaultMaxFileSize = int64(1 << 20)
)

// Source is a program file read into memory.
type Source struct {
	// Path is the file the source was read from.
	Path string

	// Text is the file content.
	Text string

	// Lines is Text split into lines without their terminators.
	Lines []string
}

// Size returns the source length in bytes.
func (s *Source) Size() int {
	return len(s.Text)
}

// Config contains loader settings.
type Config struct {
	// Extension every program file must carry, including the dot.
	Extension string

	// MaxFileSize is the largest file accepted, in bytes.
	MaxFileSize int64
}

// DefaultConfig returns the default loader settings.
func DefaultConfig() *Config {
	return &Config{
		Extension:   DefaultExtension,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Loader reads program files from disk.
type Loader struct {
	config *Config
	logger *slog.Logger
}

// NewLoader creates a loader. A nil config uses DefaultConfig; a nil logger
// uses slog.Default().
func NewLoader(config *Config, logger *slog.Logger) *Loader {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{config: config, logger: logger}
}

// Load reads a single program file after checking its extension and size.
func (l *Loader) Load(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !l.hasExtension(path) {
		return nil, fmt.Errorf("%s: %w (want %s)", path, ErrExtension, l.config.Extension)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > l.config.MaxFileSize {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, info.Size(), l.config.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	src := &Source{
		Path:  path,
		Text:  string(data),
		Lines: SplitLines(string(data)),
	}

	l.logger.DebugContext(ctx, "loaded source",
		"path", path,
		"bytes", src.Size(),
		"lines", len(src.Lines),
	)

	return src, nil
}

// Discover expands paths into the program files they name. Files are
// returned as given; directories are walked for files with the configured
// extension, skipping hidden entries. The result is sorted and free of
// duplicates.
func (l *Loader) Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && l.hasExtension(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %q: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (l *Loader) hasExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), l.config.Extension)
}

// LoadFile is a convenience function that loads a file with the default
// settings.
func LoadFile(path string) (*Source, error) {
	return NewLoader(nil, nil).Load(context.Background(), path)
}

// SplitLines splits source text into lines, accepting \n and \r\n endings.
// A final line terminator does not produce an empty trailing line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
