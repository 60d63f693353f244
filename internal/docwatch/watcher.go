// Package docwatch reloads the session when the document file changes on
// disk, so out-of-band edits (or a fresh upload dropped into place) show up
// without a restart.
package docwatch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/othala/internal/session"
)

// EventCallback is called after a watcher-driven reload succeeds.
// kind is currently always "updated".
type EventCallback func(kind string, path string)

// debounce coalesces editor write bursts (truncate+write, tmp+rename) into
// a single reload.
const debounce = 200 * time.Millisecond

// Watch observes the directory containing docPath and reloads svc whenever
// the document file is created, written, or renamed into place. It runs
// until ctx is cancelled. Reload failures keep the prior in-memory document
// and are logged, never fatal.
func Watch(ctx context.Context, svc *session.Service, docPath string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	docPath = filepath.Clean(docPath)
	dir := filepath.Dir(docPath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("document", docPath))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(debounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			if err := svc.Reload(); err != nil {
				logger.Warn("watcher: reload failed, keeping prior document",
					slog.String("document", docPath),
					slog.String("error", err.Error()))
				continue
			}
			logger.Debug("watcher: document reloaded", slog.String("document", docPath))
			if cb != nil {
				cb("updated", filepath.Base(docPath))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != docPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
