package relocation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// ErrFolderOutsideDestination is returned when a `folder` value would place a
// document outside the destination directory.
var ErrFolderOutsideDestination = errors.New("relocation: folder escapes destination directory")

// Destination computes where a staged document named fileName lands below
// base, given its frontmatter:
//
//	folder + title  base/<folder>/<slug>/<slug><ext>
//	folder only     base/<folder>/<fileName>
//	otherwise       base/<fileName>
//
// A title alone never renames the file, so staged documents that already sit
// in the destination stay where they are.
func Destination(base string, fm interfaces.FrontMatter, fileName, ext string) (string, error) {
	dir := base
	folder := strings.Trim(filepath.ToSlash(strings.TrimSpace(fm.Folder)), "/")
	if folder != "" {
		joined := filepath.Join(base, filepath.FromSlash(folder))
		rel, err := filepath.Rel(base, joined)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %q", ErrFolderOutsideDestination, fm.Folder)
		}
		dir = joined
	}

	if folder != "" {
		if slug := naming.Slug(fm.Title); slug != "" {
			return filepath.Join(dir, slug, slug+ext), nil
		}
	}
	return filepath.Join(dir, fileName), nil
}
