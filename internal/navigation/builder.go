// Package navigation turns a scanned documentation tree into the sidebar and
// top-level navigation handed to the site renderer.
//
// Each directory is resolved with the following precedence:
//
//  1. it holds a document whose normalized name equals its own: the document
//     is emitted as a single page in place of the directory;
//  2. the parent holds a document with the directory's exact name: the
//     directory is skipped, that document already represents it;
//  3. it holds an index document: it becomes a group titled from the index;
//  4. it has other content: its entries are spliced into the parent list;
//  5. it is empty: it is omitted.
//
// Index documents never appear as pages. Builds are pure functions of the
// filesystem; nothing is cached between calls.
package navigation

import (
	"context"
	"io/fs"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/scanner"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const (
	defaultIndexName = "index"
	defaultLocale    = "en"
)

// Config tunes the builder.
type Config struct {
	// Extension of document files, defaults to ".md".
	Extension string
	// IndexName is the document base name that titles a group, defaults to "index".
	IndexName string
	// Locale drives title collation, defaults to "en".
	Locale string
	// DirectoriesFirst places groups before pages when neither order nor a
	// numeric prefix tells them apart.
	DirectoriesFirst bool
	Logger           interfaces.Logger
	Observer         Observer
}

// Stats counts what a section build produced.
type Stats struct {
	Pages     int
	Groups    int
	Collapsed int
	Flattened int
	Skipped   int
	Omitted   int
}

// Observer receives per-section build statistics.
type Observer interface {
	ObserveSection(section string, stats Stats)
}

// Builder assembles navigation trees from an fs.FS rooted at the content root.
type Builder struct {
	fs               fs.FS
	scanner          *scanner.Scanner
	indexName        string
	locale           language.Tag
	directoriesFirst bool
	logger           interfaces.Logger
	observer         Observer
}

// NewBuilder constructs a Builder over filesystem.
func NewBuilder(filesystem fs.FS, cfg Config) *Builder {
	logger := logging.Or(cfg.Logger)

	indexName := strings.TrimSpace(cfg.IndexName)
	if indexName == "" {
		indexName = defaultIndexName
	}

	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = defaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("navigation.locale.invalid", "locale", locale, "error", err)
		tag = language.English
	}

	return &Builder{
		fs:               filesystem,
		scanner:          scanner.New(filesystem, scanner.Config{Extension: cfg.Extension, Logger: logger}),
		indexName:        indexName,
		locale:           tag,
		directoriesFirst: cfg.DirectoriesFirst,
		logger:           logger,
		observer:         cfg.Observer,
	}
}

// BuildSection returns the sidebar entries for dir, a path relative to the
// content root. It never fails: unreadable or missing directories produce an
// empty slice and a log entry.
func (b *Builder) BuildSection(ctx context.Context, dir string) []interfaces.NavItem {
	if ctx == nil {
		ctx = context.Background()
	}
	root, err := b.scanner.Scan(ctx, dir)
	if err != nil {
		b.logger.Warn("navigation.section.scan_interrupted", "section", dir, "error", err)
	}

	run := newBuild(b)
	items := run.toItems(run.resolve(root))

	b.logger.Debug("navigation.section.built",
		"section", root.Path,
		"items", len(items),
		"documents", root.CountFiles(),
		"pages", run.stats.Pages,
		"groups", run.stats.Groups,
	)
	if b.observer != nil {
		b.observer.ObserveSection(root.Path, run.stats)
	}
	return items
}

// BuildSidebar builds one entry list per section, keyed "/<section>/".
// Sections missing from the filesystem are left out of the map.
func (b *Builder) BuildSidebar(ctx context.Context, sections []string) interfaces.Sidebar {
	sidebar := interfaces.Sidebar{}
	for _, section := range sections {
		section = strings.Trim(strings.TrimSpace(section), "/")
		if section == "" {
			continue
		}
		info, err := fs.Stat(b.fs, section)
		if err != nil || !info.IsDir() {
			b.logger.Debug("navigation.section.missing", "section", section)
			continue
		}
		sidebar[SectionKey(section)] = b.BuildSection(ctx, section)
	}
	return sidebar
}

// SectionKey returns the sidebar map key for section.
func SectionKey(section string) string {
	return "/" + strings.Trim(section, "/") + "/"
}
