// Package source loads Callisto program files and watches them for
// changes.
//
// Loader enforces the configured extension and size limit before reading a
// file, and Discover expands directories into the program files they hold:
//
//	loader := source.NewLoader(&source.Config{Extension: ".cal", MaxFileSize: 1 << 20}, logger)
//	src, err := loader.Load(ctx, "hello.cal")
//
// FileWatcher drives "callisto run --watch":
//
//	w, err := source.NewFileWatcher(&source.FileWatcherConfig{Path: path, DebounceInterval: 100 * time.Millisecond}, logger)
//	defer w.Stop()
//	err = w.Watch(ctx, func(ctx context.Context) error { return rerun(ctx) })
package source
