// Package watch rebuilds the navigation while documentation is being edited.
// It watches the content root recursively and fires a debounced trigger when
// documents are created, written, removed or renamed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/internal/scanner"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const defaultDebounce = 200 * time.Millisecond

// ErrTriggerRequired is returned by New when no trigger is configured.
var ErrTriggerRequired = errors.New("watch: trigger required")

// Trigger performs one rebuild.
type Trigger func(ctx context.Context) error

// Config configures a Watcher.
type Config struct {
	// Root is the directory watched recursively.
	Root string
	// EnsureDirs are created below Root before watching starts.
	EnsureDirs []string
	Extension  string
	Debounce   time.Duration
	// SkipInitial suppresses the rebuild normally run once watching starts.
	SkipInitial bool
	Trigger     Trigger
	Logger      interfaces.Logger
}

// Watcher debounces document changes into Trigger calls.
type Watcher struct {
	root        string
	ensureDirs  []string
	extension   string
	debounce    time.Duration
	skipInitial bool
	trigger     Trigger
	logger      interfaces.Logger
}

// New validates cfg and returns a Watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.Trigger == nil {
		return nil, ErrTriggerRequired
	}
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		root = "."
	}
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = ".md"
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		root:        filepath.Clean(root),
		ensureDirs:  append([]string(nil), cfg.EnsureDirs...),
		extension:   ext,
		debounce:    debounce,
		skipInitial: cfg.SkipInitial,
		trigger:     cfg.Trigger,
		logger:      logging.Or(cfg.Logger),
	}, nil
}

// Run watches until ctx is cancelled. Trigger errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	for _, dir := range w.ensureDirs {
		path := filepath.Join(w.root, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("watch: create %s: %w", path, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.root); err != nil {
		return err
	}
	w.logger.Info("watch.started", "root", w.root, "debounce", w.debounce.String())

	if !w.skipInitial {
		w.fire(ctx, "initial")
	}

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, event) {
				continue
			}
			pending = event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)

		case <-timerC:
			timerC = nil
			w.fire(ctx, pending)
		}
	}
}

// relevant reports whether event should schedule a rebuild. New directories
// are added to the watch list; a directory appearing or vanishing counts as
// a change since it may carry documents.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, event.Name); err != nil {
				w.logger.Warn("watch.directory.add_failed", "path", event.Name, "error", err)
			}
			return true
		}
	}
	if !naming.HasExtension(event.Name, w.extension) {
		return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// ignored skips hidden paths so writing the output below e.g. .vitepress
// never retriggers a build.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if scanner.Hidden(part) {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("watch.directory.unreadable", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return fs.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) fire(ctx context.Context, cause string) {
	started := time.Now()
	if err := w.trigger(ctx); err != nil {
		w.logger.Error("watch.rebuild.failed", "cause", cause, "error", err)
		return
	}
	w.logger.Info("watch.rebuild.completed", "cause", cause, "duration_ms", time.Since(started).Milliseconds())
}
