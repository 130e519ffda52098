package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultReloadDebounce coalesces bursts of editor writes into one reload.
const DefaultReloadDebounce = 250 * time.Millisecond

// WatchConfig controls how a seed file is watched for changes.
type WatchConfig struct {
	Path     string
	Renderer *DescriptionRenderer
	Logger   *zap.Logger
	Debounce time.Duration
}

// Reload reads the seed file and swaps it into the catalog. The previous contents
// stay in place when the file cannot be read or fails validation.
func Reload(cat *Catalog, path string, renderer *DescriptionRenderer) (uint64, error) {
	products, err := LoadFile(path, renderer)
	if err != nil {
		return 0, err
	}
	return cat.Replace(products), nil
}

// Watch reloads the catalog whenever the seed file changes. It blocks until ctx is done.
func Watch(ctx context.Context, cat *Catalog, cfg WatchConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	target := filepath.Clean(cfg.Path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file via rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("catalog watcher started", zap.String("path", target))

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			rev, err := Reload(cat, target, cfg.Renderer)
			if err != nil {
				logger.Warn("catalog reload failed; keeping previous products", zap.Error(err))
				continue
			}
			logger.Info("catalog reloaded",
				zap.Uint64("revision", rev),
				zap.Int("products", len(cat.Snapshot().Products)),
			)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
