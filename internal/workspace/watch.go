package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ivoronin/scenefilter/internal/config"
	"github.com/ivoronin/scenefilter/internal/logging"
)

// DebounceInterval groups bursts of file events into one reload.
const DebounceInterval = 100 * time.Millisecond

// WatchedFiles returns the files a workspace built from cfg depends on.
func WatchedFiles(cfg *config.Config, scenePath string) []string {
	files := append([]string(nil), cfg.Definitions...)
	if cfg.UserFilters != "" {
		files = append(files, cfg.UserFilters)
	}
	if scenePath == "" {
		scenePath = cfg.Scene
	}
	if scenePath != "" {
		files = append(files, scenePath)
	}
	return files
}

// Watch calls reload whenever one of files changes, until ctx is done.
// Directories are watched rather than files so editors that replace files
// by rename are picked up. reload runs on the calling goroutine.
func Watch(ctx context.Context, files []string, log *slog.Logger, reload func()) error {
	if log == nil {
		log = logging.Discard()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !wanted[abs] {
				continue
			}
			log.Debug("watched file changed", "path", abs, "op", ev.Op.String())
			debounce.Reset(DebounceInterval)

		case <-debounce.C:
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "error", err)
		}
	}
}
