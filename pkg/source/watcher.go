package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a program file and calls back when it changes.
// It implements debouncing so an editor's burst of writes causes one run.
// Runs never overlap: a change cancels the context of the run in progress
// and the next run starts once that one has returned.
//
// The watcher observes the file's directory rather than the file itself:
// editors that save by writing a temporary file and renaming it over the
// original would otherwise leave the watch attached to the old inode.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *FileWatcherConfig
	debounce *Debouncer
	target   string

	mu        sync.Mutex
	running   bool
	cancelRun context.CancelFunc
	stopOnce  sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// FileWatcherConfig contains configuration for the file watcher.
type FileWatcherConfig struct {
	// Path is the program file to watch
	Path string

	// DebounceInterval is the time to wait after the last change before
	// calling back (default: 100ms)
	DebounceInterval time.Duration
}

// DefaultFileWatcherConfig returns the default watcher configuration.
func DefaultFileWatcherConfig() *FileWatcherConfig {
	return &FileWatcherConfig{
		DebounceInterval: 100 * time.Millisecond,
	}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *FileWatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil {
		config = DefaultFileWatcherConfig()
	}
	if config.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	target, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", config.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		target:   target,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until the context is cancelled or Stop is called, invoking
// onChange after each debounced change to the file. The context passed to
// onChange is cancelled when the file changes again. Errors from onChange
// are logged and watching continues.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(context.Context) error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer close(fw.doneCh)
	defer fw.cancelCurrentRun()

	dir := filepath.Dir(fw.target)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	fw.logger.InfoContext(ctx, "file watcher started",
		"path", fw.config.Path,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.InfoContext(ctx, "file watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.DebugContext(ctx, "file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			fw.cancelCurrentRun()
			fw.debounce.Trigger(func() {
				runCtx, cancel := fw.beginRun(ctx)
				defer cancel()

				fw.logger.InfoContext(ctx, "source changed, re-running", "path", fw.config.Path)
				if err := onChange(runCtx); err != nil && runCtx.Err() == nil {
					fw.logger.ErrorContext(ctx, "run after change failed", "error", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.ErrorContext(ctx, "file watcher error", "error", err)
		}
	}
}

// beginRun derives the context of one run from ctx and records its cancel
// function so the next change can interrupt it.
func (fw *FileWatcher) beginRun(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(ctx)

	fw.mu.Lock()
	if fw.cancelRun != nil {
		fw.cancelRun()
	}
	fw.cancelRun = cancel
	select {
	case <-fw.stopCh:
		cancel()
	default:
	}
	fw.mu.Unlock()

	return runCtx, cancel
}

// cancelCurrentRun interrupts the run in progress, if any.
func (fw *FileWatcher) cancelCurrentRun() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.cancelRun != nil {
		fw.cancelRun()
	}
}

// Stop stops the file watcher and releases its resources. A run in
// progress is cancelled and Stop waits for it to return. It is safe to call
// more than once and before Watch.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stopCh)

		fw.mu.Lock()
		running := fw.running
		fw.mu.Unlock()
		if running {
			<-fw.doneCh
		}

		fw.cancelCurrentRun()
		fw.debounce.Stop()

		if cerr := fw.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// shouldProcessEvent reports whether an event concerns the watched file
// and changes its content.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == fw.target
}

// Debouncer collects rapid events and triggers the callback only after a
// quiet period. Callbacks run one at a time; when several fire while one is
// running, only the latest runs after it.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
	fired    uint64

	runMu    sync.Mutex // held while a callback runs
	inflight sync.WaitGroup
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger records an event. The latest callback runs once the interval has
// passed without another Trigger.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.fired++
	gen := d.fired
	cb := d.callback
	d.inflight.Add(1)
	d.mu.Unlock()
	defer d.inflight.Done()

	d.runMu.Lock()
	defer d.runMu.Unlock()

	// A newer firing supersedes this one while it waited for the previous
	// callback to return.
	d.mu.Lock()
	stale := d.stopped || gen != d.fired
	d.mu.Unlock()
	if stale || cb == nil {
		return
	}
	cb()
}

// Stop cancels any pending callback and waits for a running one to return.
// It must not be called from within a callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
	d.mu.Unlock()

	d.inflight.Wait()
}
