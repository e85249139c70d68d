package navigation

import (
	"errors"
	"io/fs"

	"github.com/goliatone/go-docnav/internal/markdown"
	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/internal/scanner"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// entry is a navigation item plus the signals used to order it among its
// siblings.
type entry struct {
	item      interfaces.NavItem
	order     int
	prefix    int
	hasPrefix bool
	isDir     bool
	key       string
}

// build holds the state of a single BuildSection call.
type build struct {
	*Builder
	ext         string
	index       string
	frontMatter map[string]interfaces.FrontMatter
	order       *orderer
	stats       Stats
}

func newBuild(b *Builder) *build {
	ext := b.scanner.Extension()
	return &build{
		Builder:     b,
		ext:         ext,
		index:       b.indexName,
		frontMatter: map[string]interfaces.FrontMatter{},
		order:       newOrderer(b.locale, b.directoriesFirst),
	}
}

// resolve returns the ordered entries for the children of dir.
func (r *build) resolve(dir *scanner.Node) []entry {
	var out []entry
	for _, child := range dir.Children {
		if child.IsDir {
			out = append(out, r.resolveDir(dir, child)...)
			continue
		}
		if e, ok := r.pageEntry(dir, child); ok {
			out = append(out, e)
		}
	}
	r.order.sort(out)
	return out
}

func (r *build) resolveDir(parent, dir *scanner.Node) []entry {
	prefix, hasPrefix := naming.OrderPrefix(dir.Name)

	if doc, ok := r.representative(dir); ok {
		r.stats.Collapsed++
		r.logger.Debug("navigation.directory.collapsed", "path", dir.Path, "document", doc.Path)
		e := r.page(dir, doc)
		e.prefix, e.hasPrefix = prefix, hasPrefix
		e.isDir = true
		return []entry{e}
	}

	if _, ok := parent.Document(dir.Name, r.ext); ok {
		r.stats.Skipped++
		r.logger.Debug("navigation.directory.shadowed", "path", dir.Path)
		return nil
	}

	children := r.resolve(dir)

	if index, ok := dir.Document(r.index, r.ext); ok {
		fm := r.readFrontMatter(index.Path)
		title := fm.Title
		if title == "" {
			title = naming.FormatSegment(dir.Name)
		}
		collapsed := false
		r.stats.Groups++
		return []entry{{
			item: interfaces.NavItem{
				Text:      title,
				Collapsed: &collapsed,
				Items:     r.toItems(children),
			},
			order:     fm.Order,
			prefix:    prefix,
			hasPrefix: hasPrefix,
			isDir:     true,
			key:       dir.Path,
		}}
	}

	if len(children) > 0 {
		r.stats.Flattened++
		r.logger.Debug("navigation.directory.flattened", "path", dir.Path, "items", len(children))
		return children
	}

	r.stats.Omitted++
	return nil
}

// representative finds the document inside dir whose normalized name equals
// the directory's normalized name.
func (r *build) representative(dir *scanner.Node) (*scanner.Node, bool) {
	want := naming.Normalize(dir.Name)
	for _, file := range dir.Files() {
		if naming.Normalize(naming.TrimExtension(file.Name, r.ext)) == want {
			return file, true
		}
	}
	return nil, false
}

func (r *build) pageEntry(dir, file *scanner.Node) (entry, bool) {
	if naming.TrimExtension(file.Name, r.ext) == r.index {
		return entry{}, false
	}
	e := r.page(dir, file)
	e.prefix, e.hasPrefix = naming.OrderPrefix(file.Name)
	return e, true
}

// page builds a leaf entry for file. dir is the directory whose index
// document provides the fallback title.
func (r *build) page(dir, file *scanner.Node) entry {
	base := naming.TrimExtension(file.Name, r.ext)
	fm := r.readFrontMatter(file.Path)
	r.stats.Pages++
	return entry{
		item: interfaces.NavItem{
			Text: r.title(fm, dir, base),
			Link: "/" + naming.TrimExtension(file.Path, r.ext),
		},
		order: fm.Order,
		key:   file.Path,
	}
}

func (r *build) readFrontMatter(path string) interfaces.FrontMatter {
	if fm, ok := r.frontMatter[path]; ok {
		return fm
	}
	fm, err := markdown.ReadFrontMatter(r.fs, path)
	if err != nil {
		level := r.logger.Debug
		if !errors.Is(err, markdown.ErrMalformedFrontMatter) && !errors.Is(err, fs.ErrNotExist) {
			level = r.logger.Warn
		}
		level("navigation.frontmatter.degraded", "path", path, "error", err)
	}
	r.frontMatter[path] = fm
	return fm
}

func (r *build) toItems(entries []entry) []interfaces.NavItem {
	items := make([]interfaces.NavItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.item)
	}
	return items
}
