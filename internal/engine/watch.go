package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces bursts of filesystem events into one rebuild.
const debounceInterval = 100 * time.Millisecond

// Watch compiles once, then recompiles whenever a mapping file changes.
// Every build outcome is delivered to onBuild; a failed build does not stop
// the watch. Watch returns when the context is cancelled.
func (e *Engine) Watch(ctx context.Context, onBuild func(*CompileResult, error)) error {
	onBuild(e.Compile(ctx))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDir(watcher, e.cfg.MappingsDir); err != nil {
		return fmt.Errorf("failed to watch mappings dir: %w", err)
	}
	e.logger.Info("watching for changes", "dir", e.cfg.MappingsDir)

	// Rebuilds run from this loop, never from the debounce timer's
	// goroutine, so two builds cannot interleave their output.
	rebuild := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-rebuild:
			onBuild(e.Compile(ctx))

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New subdirectories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDir(watcher, event.Name)
					continue
				}
			}
			switch filepath.Ext(event.Name) {
			case ".yaml", ".yml":
			default:
				continue
			}

			e.logger.Debug("mapping file changed", "file", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchDir recursively adds a directory tree to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
