// Package ingest watches the input directory and reports bursts of new files.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

type WatchConfig struct {
	Dir         string        // input directory, watched non-recursively
	InitialScan bool          // emit files already present as the first batch
	Debounce    time.Duration // quiet period that closes a batch
}

// StartWatcher emits one batch of changed paths per burst of filesystem
// activity. Hidden and partially downloaded files are ignored. Both channels
// are closed when ctx ends.
func StartWatcher(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan []string, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Dir == "" {
		return nil, nil, errors.New("no directory provided")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}
	if err := w.Add(cfg.Dir); err != nil {
		logger.Error("failed to watch directory", "dir", cfg.Dir, "error", err)
		_ = w.Close()
		return nil, nil, err
	}

	batches := make(chan []string, 4)
	errCh := make(chan error, 1)

	var initial []string
	if cfg.InitialScan {
		initial, err = existingFiles(cfg.Dir)
		if err != nil {
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(batches)
		defer close(errCh)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("failed to close watcher", "error", err)
			}
		}()

		if len(initial) > 0 {
			select {
			case batches <- initial:
			case <-ctx.Done():
				return
			}
		}

		timer := time.NewTimer(cfg.Debounce)
		timer.Stop()
		pending := map[string]struct{}{}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(e) {
					continue
				}
				pending[e.Name] = struct{}{}
				timer.Reset(cfg.Debounce)
			case <-timer.C:
				if len(pending) == 0 {
					continue
				}
				batch := make([]string, 0, len(pending))
				for p := range pending {
					batch = append(batch, p)
				}
				sort.Strings(batch)
				pending = map[string]struct{}{}
				logger.Debug("watch batch ready", "dir", cfg.Dir, "paths", len(batch))
				select {
				case batches <- batch:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return batches, errCh, nil
}

func relevant(e fsnotify.Event) bool {
	if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) && !e.Has(fsnotify.Rename) {
		return false
	}
	if IsHidden(e.Name) || IsPartial(e.Name) {
		return false
	}
	info, err := os.Stat(e.Name)
	// renamed away: nothing to file
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func existingFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, de := range entries {
		if de.Type().IsRegular() && !IsHidden(de.Name()) && !IsPartial(de.Name()) {
			out = append(out, filepath.Join(dir, de.Name()))
		}
	}
	return out, nil
}
