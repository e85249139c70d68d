package navigation

import (
	"io/fs"
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"github.com/goliatone/go-docnav/internal/naming"
	"github.com/goliatone/go-docnav/internal/scanner"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// NavConfig configures the top-level navigation bar.
type NavConfig struct {
	// HomeText labels the leading link to "/".
	HomeText string
	// Exclude lists top-level directories that never get a nav entry.
	Exclude []string
}

// BuildNav returns the top-level navigation: a home link followed by one
// entry per visible top-level directory, sorted by name.
func (b *Builder) BuildNav(cfg NavConfig) []interfaces.NavItem {
	home := strings.TrimSpace(cfg.HomeText)
	if home == "" {
		home = "Home"
	}
	nav := []interfaces.NavItem{{Text: home, Link: "/"}}

	entries, err := fs.ReadDir(b.fs, ".")
	if err != nil {
		b.logger.Warn("navigation.nav.unreadable", "error", err)
		return nav
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || scanner.Hidden(name) || slices.Contains(cfg.Exclude, name) {
			continue
		}
		names = append(names, name)
	}
	collator := collate.New(b.locale)
	slices.SortFunc(names, collator.CompareString)

	for _, name := range names {
		nav = append(nav, interfaces.NavItem{
			Text: naming.Capitalize(name),
			Link: SectionKey(name),
		})
	}
	return nav
}
