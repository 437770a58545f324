package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc is called with the path of the last changed file once
// changes have settled.
type ChangeFunc func(ctx context.Context, path string) error

// Config selects the files to watch.
type Config struct {
	Paths    []string
	Debounce time.Duration
}

// Run watches cfg.Paths until ctx is done. Bursts of events are
// coalesced into a single onChange call. Run returns nil when ctx is
// cancelled and the first error returned by onChange otherwise.
func Run(ctx context.Context, cfg Config, onChange ChangeFunc) error {
	const errCtx = "watching files"

	targets, dirs, err := resolve(cfg.Paths)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		_ = fw.Close() //nolint:errcheck // best-effort close
	}()

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("%s: adding %s: %w", errCtx, dir, err)
		}
	}

	slog.Info("watching", "files", len(targets))

	delay := cfg.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	timer := time.NewTimer(delay)
	timer.Stop()

	defer timer.Stop()

	var (
		pending string
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !relevant(ev) {
				continue
			}

			if _, ok := targets[filepath.Clean(ev.Name)]; !ok {
				continue
			}

			slog.Debug("change detected", "path", ev.Name, "op", ev.Op.String())

			pending = ev.Name

			timer.Reset(delay)
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			slog.Error("watcher error", "error", err)

		case <-fire:
			fire = nil

			if err := onChange(ctx, pending); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Rename)
}

// resolve returns the absolute target paths and their distinct parent
// directories.
func resolve(paths []string) (map[string]struct{}, []string, error) {
	targets := make(map[string]struct{}, len(paths))
	seen := make(map[string]struct{})

	var dirs []string

	for _, pa := range paths {
		if pa == "" {
			continue
		}

		abs, err := filepath.Abs(pa)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", pa, err)
		}

		targets[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	if len(targets) == 0 {
		return nil, nil, fmt.Errorf("no files to watch")
	}

	return targets, dirs, nil
}
