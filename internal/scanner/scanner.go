// Package scanner walks a documentation tree and returns the directories and
// Markdown documents it contains. Hidden entries (names starting with "." or
// "_") and non-Markdown files are skipped. Unreadable directories are logged
// and reported as empty so the rest of the tree is still scanned.
package scanner

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const defaultExtension = ".md"

// Node describes a scanned directory or document. Paths are slash separated
// and relative to the scanned filesystem root.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Children []*Node
}

// Config configures a Scanner.
type Config struct {
	// Extension selects document files, defaults to ".md".
	Extension string
	Logger    interfaces.Logger
}

// Scanner reads directory trees from an fs.FS.
type Scanner struct {
	fs        fs.FS
	extension string
	logger    interfaces.Logger
}

// New constructs a Scanner over filesystem.
func New(filesystem fs.FS, cfg Config) *Scanner {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Scanner{
		fs:        filesystem,
		extension: ext,
		logger:    logging.Or(cfg.Logger),
	}
}

// Extension returns the document extension the scanner matches.
func (s *Scanner) Extension() string {
	return s.extension
}

// Scan walks dir recursively. The returned root node is never nil. The only
// error reported is ctx cancellation, in which case the partial tree is
// returned.
func (s *Scanner) Scan(ctx context.Context, dir string) (*Node, error) {
	dir = cleanDir(dir)
	root := &Node{
		Name:  path.Base(dir),
		Path:  dir,
		IsDir: true,
	}
	err := s.fill(ctx, root)
	return root, err
}

func (s *Scanner) fill(ctx context.Context, dir *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := fs.ReadDir(s.fs, dir.Path)
	if err != nil {
		s.logger.Warn("scanner.directory.unreadable", "path", dir.Path, "error", err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if Hidden(name) {
			continue
		}
		child := &Node{
			Name:  name,
			Path:  joinPath(dir.Path, name),
			IsDir: entry.IsDir(),
		}
		if child.IsDir {
			if err := s.fill(ctx, child); err != nil {
				dir.Children = append(dir.Children, child)
				return err
			}
		} else if !naming.HasExtension(name, s.extension) {
			continue
		}
		dir.Children = append(dir.Children, child)
	}
	return nil
}

// Hidden reports whether name is excluded from navigation.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// Files returns the document children of n in scan order.
func (n *Node) Files() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if !child.IsDir {
			out = append(out, child)
		}
	}
	return out
}

// Child returns the direct child called name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, child := range n.Children {
		if child.Name == name {
			return child, true
		}
	}
	return nil, false
}

// Document returns the document child whose name is base plus ext. The
// extension is matched without regard to case.
func (n *Node) Document(base, ext string) (*Node, bool) {
	for _, child := range n.Files() {
		if naming.HasExtension(child.Name, ext) && naming.TrimExtension(child.Name, ext) == base {
			return child, true
		}
	}
	return nil, false
}

// CountFiles returns the number of documents below n.
func (n *Node) CountFiles() int {
	if !n.IsDir {
		return 1
	}
	total := 0
	for _, child := range n.Children {
		total += child.CountFiles()
	}
	return total
}

func cleanDir(dir string) string {
	dir = path.Clean(strings.ReplaceAll(strings.TrimSpace(dir), "\\", "/"))
	dir = strings.TrimPrefix(dir, "/")
	if dir == "" {
		return "."
	}
	return dir
}

func joinPath(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
