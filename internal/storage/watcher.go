package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reports changes to one file. Editors often replace files instead
// of writing in place, so the parent directory is watched and events are
// filtered by name. Bursts of events are debounced into one callback.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher watches path and calls onChange after it settles.
func NewWatcher(path string, debounce time.Duration, onChange func(), logger zerolog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		watcher:  watcher,
		logger:   logger.With().Str("component", "watcher").Str("path", path).Logger(),
	}, nil
}

// Run processes filesystem events until ctx is cancelled, then closes the watcher.
func (watcher *Watcher) Run(ctx context.Context) {
	defer watcher.close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != watcher.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				watcher.logger.Debug().Str("op", event.Op.String()).Msg("File event")
				watcher.schedule()
			}
		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			watcher.logger.Error().Err(err).Msg("fsnotify error")
		}
	}
}

func (watcher *Watcher) schedule() {
	watcher.debounceMu.Lock()
	defer watcher.debounceMu.Unlock()

	if watcher.debounceTimer != nil {
		watcher.debounceTimer.Stop()
	}
	watcher.debounceTimer = time.AfterFunc(watcher.debounce, watcher.onChange)
}

func (watcher *Watcher) close() {
	watcher.debounceMu.Lock()
	if watcher.debounceTimer != nil {
		watcher.debounceTimer.Stop()
	}
	watcher.debounceMu.Unlock()

	if err := watcher.watcher.Close(); err != nil {
		watcher.logger.Warn().Err(err).Msg("Failed to close watcher")
	}
}
