package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// fileWatcher reports changes to a single file. It watches the parent
// directory, since many editors save by replacing the file.
type fileWatcher struct {
	target string
	fw     *fsnotify.Watcher
	logger *log.Logger
}

func newFileWatcher(path string, logger *log.Logger) (*fileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &fileWatcher{target: filepath.Clean(path), fw: fw, logger: logger}, nil
}

// Run calls fn after each change to the file until ctx is done. fn runs on
// the caller's goroutine, one call at a time.
func (w *fileWatcher) Run(ctx context.Context, debounce time.Duration, fn func()) error {
	defer w.fw.Close()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.isChange(ev) {
				continue
			}
			w.logger.Debug("input changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}
		case <-fire:
			fn()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "err", err)
		}
	}
}

func (w *fileWatcher) isChange(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
