package navigation

import (
	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/internal/scanner"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// title resolves a page label: explicit frontmatter title, then the title of
// the index document in dir, then the formatted path segment.
func (r *build) title(fm interfaces.FrontMatter, dir *scanner.Node, segment string) string {
	if fm.HasTitle() {
		return fm.Title
	}
	if title := r.indexTitle(dir); title != "" {
		return title
	}
	return naming.FormatSegment(segment)
}

func (r *build) indexTitle(dir *scanner.Node) string {
	if dir == nil {
		return ""
	}
	index, ok := dir.Document(r.index, r.ext)
	if !ok {
		return ""
	}
	return r.readFrontMatter(index.Path).Title
}
