package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/automaton"
	"github.com/aretw0/automaton/internal/presentation/tui"
	"github.com/aretw0/automaton/pkg/codec"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher re-applies a definition file to a Workbench whenever the file changes.
// A change that fails to parse or validate leaves the previous definition applied.
type Watcher struct {
	path     string
	wb       *automaton.Workbench
	logger   *slog.Logger
	debounce time.Duration

	// OnReload is called after every load attempt with its outcome.
	OnReload func(ctx context.Context, err error)
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, wb *automaton.Workbench, logger *slog.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if _, err := codec.FormatFromPath(absPath); err != nil {
		return nil, err
	}
	return &Watcher{
		path:     absPath,
		wb:       wb,
		logger:   logger,
		debounce: defaultDebounce,
	}, nil
}

// Load reads the file and applies it.
func (w *Watcher) Load(ctx context.Context) error {
	def, err := codec.ReadFile(w.path)
	if err == nil {
		err = w.wb.Apply(ctx, def)
	}
	if err != nil {
		w.logger.Warn("Reload failed, keeping previous definition", "path", w.path, "err", err)
	} else {
		w.logger.Info("Definition reloaded", "path", w.path)
	}
	if w.OnReload != nil {
		w.OnReload(ctx, err)
	}
	return err
}

// Watch blocks until ctx is cancelled, reloading on every write to the file.
// The directory is watched so that editors replacing the file are noticed.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("Change detected", "event", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			_ = w.Load(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "err", err)
		}
	}
}

// RunWatch applies the file at path and re-runs inputs on every change until interrupted.
func RunWatch(ctx *SignalContext, opts Options, path string, inputs []string) error {
	logger := createLogger(opts)
	out := opts.stdout()
	tui.PrintBanner(opts.stderr(), automaton.Version)

	opts.Output = OutputText
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}

	wb := automaton.NewWorkbench(
		automaton.WithLogger(logger),
		automaton.WithLifecycleHooks(createHooks(logger, nil)),
		automaton.WithName("watch"),
	)
	w, err := NewWatcher(path, wb, logger)
	if err != nil {
		return err
	}

	w.OnReload = func(ctx context.Context, err error) {
		if err != nil {
			printSystemMessage(out, "Change rejected: %v", err)
			if wb.Current() != nil {
				printSystemMessage(out, "Keeping previous definition.")
			}
			return
		}
		var md []string
		for _, in := range inputs {
			res, err := wb.RunString(ctx, in)
			if err != nil {
				md = append(md, fmt.Sprintf("Input `%s`: %v\n", in, err))
				continue
			}
			md = append(md, tui.ResultMarkdown(res))
		}
		if len(md) == 0 {
			md = append(md, tui.ValidationMarkdown(wb.Current(), nil))
		}
		_ = p.print(strings.Join(md, "\n---\n\n"), nil)
	}

	_ = w.Load(ctx)
	printSystemMessage(out, "Watching '%s'. Press Ctrl+C to stop.", path)

	if err := w.Watch(ctx); err != nil {
		return err
	}
	printSystemMessage(out, "Stopped watching.")
	return nil
}
