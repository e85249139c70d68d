// Package githook implements the post-merge hook: after a merge it asks git
// which files changed and rebuilds the navigation only when documents below
// the watched prefix were touched.
package githook

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// ErrTriggerRequired is returned by New when no rebuild trigger is configured.
var ErrTriggerRequired = errors.New("githook: trigger required")

// ChangeLister reports the files that differ between two revisions.
type ChangeLister interface {
	ChangedFiles(ctx context.Context, oldRev, newRev string) ([]string, error)
}

// GitCLI lists changes with `git diff-tree`.
type GitCLI struct {
	// Dir is the working tree; empty means the current directory.
	Dir string
	// Binary defaults to "git".
	Binary string
}

// ChangedFiles implements ChangeLister.
func (g GitCLI) ChangedFiles(ctx context.Context, oldRev, newRev string) ([]string, error) {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}
	cmd := exec.CommandContext(ctx, binary, "diff-tree", "-r", "--name-only", "--no-commit-id", oldRev, newRev)
	cmd.Dir = g.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git diff-tree %s %s: %w: %s", oldRev, newRev, err, msg)
		}
		return nil, fmt.Errorf("git diff-tree %s %s: %w", oldRev, newRev, err)
	}
	return ParseFileList(out), nil
}

// ParseFileList splits newline separated git output, dropping blank lines.
func ParseFileList(out []byte) []string {
	var files []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			files = append(files, line)
		}
	}
	return files
}

// Config configures a Hook.
type Config struct {
	Lister ChangeLister
	// Prefix limits relevant files, e.g. "docs/guide/".
	Prefix    string
	Extension string
	OldRev    string
	NewRev    string
	Trigger   func(ctx context.Context) error
	Logger    interfaces.Logger
}

// Hook decides whether a merge requires a rebuild.
type Hook struct {
	lister    ChangeLister
	prefix    string
	extension string
	oldRev    string
	newRev    string
	trigger   func(ctx context.Context) error
	logger    interfaces.Logger
}

// New returns a Hook with defaults applied.
func New(cfg Config) (*Hook, error) {
	if cfg.Trigger == nil {
		return nil, ErrTriggerRequired
	}
	lister := cfg.Lister
	if lister == nil {
		lister = GitCLI{}
	}
	ext := cfg.Extension
	if ext == "" {
		ext = ".md"
	}
	oldRev := cfg.OldRev
	if oldRev == "" {
		oldRev = "ORIG_HEAD"
	}
	newRev := cfg.NewRev
	if newRev == "" {
		newRev = "HEAD"
	}
	return &Hook{
		lister:    lister,
		prefix:    strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(cfg.Prefix)), "/"),
		extension: ext,
		oldRev:    oldRev,
		newRev:    newRev,
		trigger:   cfg.Trigger,
		logger:    logging.Or(cfg.Logger),
	}, nil
}

// Run rebuilds when relevant files changed and reports whether it did. A
// failing git invocation counts as "no changes": the hook must never block
// a merge.
func (h *Hook) Run(ctx context.Context) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := h.lister.ChangedFiles(ctx, h.oldRev, h.newRev)
	if err != nil {
		h.logger.Warn("hook.diff.failed", "old_rev", h.oldRev, "new_rev", h.newRev, "error", err)
		return false, nil
	}

	relevant := h.Relevant(files)
	if len(relevant) == 0 {
		h.logger.Info("hook.no_changes", "changed", len(files), "prefix", h.prefix)
		return false, nil
	}

	h.logger.Info("hook.rebuild", "documents", len(relevant))
	if err := h.trigger(ctx); err != nil {
		return true, fmt.Errorf("githook: rebuild: %w", err)
	}
	return true, nil
}

// Relevant filters files down to documents below the configured prefix.
func (h *Hook) Relevant(files []string) []string {
	var out []string
	for _, file := range files {
		file = strings.TrimPrefix(path.Clean("/"+file), "/")
		if h.prefix != "" && !strings.HasPrefix(file, h.prefix+"/") {
			continue
		}
		if !naming.HasExtension(file, h.extension) {
			continue
		}
		out = append(out, file)
	}
	return out
}
