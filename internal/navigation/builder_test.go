package navigation

import (
	"context"
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

func doc(frontmatter string) *fstest.MapFile {
	if frontmatter == "" {
		return &fstest.MapFile{Data: []byte("Body\n")}
	}
	return &fstest.MapFile{Data: []byte("---\n" + frontmatter + "\n---\n\nBody\n")}
}

func dir() *fstest.MapFile {
	return &fstest.MapFile{Mode: fs.ModeDir | 0o755}
}

func texts(items []interfaces.NavItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}

func assertTexts(t *testing.T, items []interfaces.NavItem, want ...string) {
	t.Helper()
	got := texts(items)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected entries\nwant: %v\ngot:  %v", want, got)
	}
}

func TestBuildSectionAlphabeticalWithoutFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.md": doc(""),
		"guide/zeta.md":  doc(""),
		"guide/alpha.md": doc(""),
		"guide/Beta.md":  doc(""),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Alpha", "Beta", "Zeta")
	if items[0].Link != "/guide/alpha" {
		t.Fatalf("expected link /guide/alpha, got %s", items[0].Link)
	}
	for _, item := range items {
		if item.IsGroup() {
			t.Fatalf("expected only pages, got group %s", item.Text)
		}
	}
}

func TestBuildSectionExplicitOrderWins(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/a.md": doc("title: Alpha\norder: 2"),
		"guide/b.md": doc("title: Bravo"),
		"guide/z.md": doc("title: Zulu\norder: 1"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Zulu", "Alpha", "Bravo")
}

func TestBuildSectionCollapsesDirectoryWithSameNamedDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"foo/foo.md":   doc("title: Foo Page"),
		"foo/other.md": doc("title: Hidden by collapse"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), ".")

	if len(items) != 1 {
		t.Fatalf("expected a single entry, got %v", texts(items))
	}
	if items[0].IsGroup() || items[0].Text != "Foo Page" || items[0].Link != "/foo/foo" {
		t.Fatalf("unexpected entry %+v", items[0])
	}
}

func TestBuildSectionCollapseUsesNormalizedNames(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/Gestion des rôles/gestion-des-roles.md": doc(""),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	if len(items) != 1 || items[0].Link != "/guide/Gestion des rôles/gestion-des-roles" {
		t.Fatalf("unexpected entries %+v", items)
	}
	if items[0].Text != "Gestion-des-roles" {
		t.Fatalf("expected formatted file name, got %q", items[0].Text)
	}
}

func TestBuildSectionIndexOnlyDirectoryIsEmptyGroup(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/intro/index.md": doc("title: Intro"),
		"guide/other/index.md": doc(""),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Intro", "Other")
	for _, item := range items {
		if !item.IsGroup() || len(item.Items) != 0 || item.Items == nil {
			t.Fatalf("expected empty group, got %+v", item)
		}
	}

	data, err := json.Marshal(items[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"text":"Intro","collapsed":false,"items":[]}` {
		t.Fatalf("unexpected JSON %s", data)
	}
}

func TestBuildSectionSkipsDirectoryShadowedBySiblingDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/setup.md":         doc("title: Setup"),
		"guide/setup/details.md": doc("title: Details"),
		"guide/setup/index.md":   doc("title: Setup group"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Setup")
	if items[0].Link != "/guide/setup" {
		t.Fatalf("expected the sibling page, got %+v", items[0])
	}
}

func TestBuildSectionFlattensDirectoryWithoutIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/top.md":         doc("title: Top"),
		"guide/misc/a.md":      doc("title: Apple"),
		"guide/misc/deep/b.md": doc("title: Banana"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Apple", "Banana", "Top")
	if items[1].Link != "/guide/misc/deep/b" {
		t.Fatalf("unexpected spliced link %s", items[1].Link)
	}
}

func TestBuildSectionOmitsEmptyDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/empty":        dir(),
		"guide/assets/x.png": {Data: []byte{0x1}},
		"guide/page.md":      doc("title: Page"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Page")
}

func TestBuildSectionGroupWithChildren(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/admin/index.md": doc("title: Administration\norder: 1"),
		"guide/admin/users.md": doc("title: Users\norder: 2"),
		"guide/admin/roles.md": doc("title: Roles\norder: 1"),
		"guide/start.md":       doc("title: Start"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Administration", "Start")
	group := items[0]
	if !group.IsGroup() || *group.Collapsed {
		t.Fatalf("expected expanded group, got %+v", group)
	}
	assertTexts(t, group.Items, "Roles", "Users")
}

func TestBuildSectionNumericPrefixes(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/Zoo.md":             doc(""),
		"guide/10 - Admin.md":      doc(""),
		"guide/2 - Reports.md":     doc(""),
		"guide/1 - Start/index.md": doc(""),
		"guide/1 - Start/a.md":     doc("title: Inside"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Start", "Reports", "Admin", "Zoo")
	if !items[0].IsGroup() {
		t.Fatalf("expected Start to be a group")
	}
}

func TestBuildSectionPagesFallBackToIndexTitle(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.md":  doc("title: Guide"),
		"guide/page.md":   doc(""),
		"guide/titled.md": doc("title: Titled"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Guide", "Titled")
}

func TestBuildSectionGroupOrderComesFromIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/a/index.md": doc("title: Alpha"),
		"guide/a/x.md":     doc(""),
		"guide/b/index.md": doc("title: Bravo\norder: 1"),
		"guide/b/y.md":     doc(""),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Bravo", "Alpha")
}

func TestBuildSectionDirectoriesFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/alpha.md":       doc(""),
		"guide/zone/index.md":  doc("title: Zone"),
		"guide/zone/inside.md": doc(""),
	}

	plain := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")
	assertTexts(t, plain, "Alpha", "Zone")

	dirsFirst := NewBuilder(fsys, Config{DirectoriesFirst: true}).BuildSection(context.Background(), "guide")
	assertTexts(t, dirsFirst, "Zone", "Alpha")
}

func TestBuildSectionTiesBrokenByLink(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/b.md": doc("title: Same"),
		"guide/a.md": doc("title: Same"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	if items[0].Link != "/guide/a" || items[1].Link != "/guide/b" {
		t.Fatalf("expected ties ordered by link, got %+v", items)
	}
}

func TestBuildSectionMalformedFrontMatterStillBuilds(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/a.md": doc("title: Broken: yes\norder: 3\ntags: [x"),
		"guide/b.md": doc("title: Fine\norder: 1"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Fine", "Broken: yes")
}

func TestBuildSectionMissingDirectory(t *testing.T) {
	items := NewBuilder(fstest.MapFS{}, Config{}).BuildSection(context.Background(), "nowhere")
	if len(items) != 0 {
		t.Fatalf("expected no entries, got %v", texts(items))
	}
}

func TestBuildSectionLinksOnlyObservedDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/a/index.md":   doc("title: A"),
		"guide/a/one.md":     doc(""),
		"guide/b/b.md":       doc(""),
		"guide/c/nested.md":  doc(""),
		"guide/plain.md":     doc(""),
		"guide/_private.md":  doc(""),
		"guide/.hidden/x.md": doc(""),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	var walk func([]interfaces.NavItem)
	walk = func(items []interfaces.NavItem) {
		for _, item := range items {
			if item.Link != "" {
				path := strings.TrimPrefix(item.Link, "/") + ".md"
				if _, ok := fsys[path]; !ok {
					t.Fatalf("link %s does not resolve to a scanned document", item.Link)
				}
				if strings.Contains(path, "/_") || strings.Contains(path, "/.") {
					t.Fatalf("hidden document leaked into navigation: %s", item.Link)
				}
			}
			walk(item.Items)
		}
	}
	walk(items)
}

type recordingObserver struct {
	sections []string
	stats    []Stats
}

func (r *recordingObserver) ObserveSection(section string, stats Stats) {
	r.sections = append(r.sections, section)
	r.stats = append(r.stats, stats)
}

func TestBuildSidebarSkipsMissingSections(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/a.md":           doc(""),
		"guide/group/index.md": doc("title: Group"),
		"guide/group/b.md":     doc(""),
		"guide/empty":          dir(),
	}
	observer := &recordingObserver{}

	sidebar := NewBuilder(fsys, Config{Observer: observer}).BuildSidebar(context.Background(), []string{"guide", "release", " /guide/ "})

	if len(sidebar) != 1 {
		t.Fatalf("expected only the guide section, got %v", sidebar)
	}
	if _, ok := sidebar["/guide/"]; !ok {
		t.Fatalf("expected /guide/ key, got %v", sidebar)
	}
	if len(observer.sections) != 2 || observer.sections[0] != "guide" {
		t.Fatalf("expected observer to see guide twice, got %v", observer.sections)
	}
	stats := observer.stats[0]
	if stats.Pages != 2 || stats.Groups != 1 || stats.Omitted != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestBuildNav(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md":          doc(""),
		"release/v1.md":     doc(""),
		"guide/a.md":        doc(""),
		"public/logo.png":   {Data: []byte{0x1}},
		".vitepress/config": {Data: []byte("")},
		"_drafts/x.md":      doc(""),
	}

	nav := NewBuilder(fsys, Config{}).BuildNav(NavConfig{HomeText: "Accueil", Exclude: []string{"public"}})

	assertTexts(t, nav, "Accueil", "Guide", "Release")
	if nav[0].Link != "/" || nav[1].Link != "/guide/" || nav[2].Link != "/release/" {
		t.Fatalf("unexpected links %+v", nav)
	}
}

func TestNewBuilderInvalidLocaleFallsBack(t *testing.T) {
	fsys := fstest.MapFS{"guide/b.md": doc(""), "guide/a.md": doc("")}
	items := NewBuilder(fsys, Config{Locale: "not a locale!"}).BuildSection(context.Background(), "guide")
	assertTexts(t, items, "A", "B")
}

func TestBuildSectionMatchesUppercaseExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/Setup.MD":           doc("title: Setup"),
		"guide/tools/index.MD":     doc("title: Tools"),
		"guide/tools/Compass.Md":   doc("title: Compass"),
		"guide/reports/reports.MD": doc("title: Reports"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Reports", "Setup", "Tools")
	if items[0].Link != "/guide/reports/reports" || items[1].Link != "/guide/Setup" {
		t.Fatalf("expected extension trimmed from links, got %s and %s", items[0].Link, items[1].Link)
	}
	if !items[2].IsGroup() {
		t.Fatalf("expected index.MD to title a group")
	}
	assertTexts(t, items[2].Items, "Compass")
}

func TestBuildSectionCollapsedDocumentFallsBackToItsOwnIndexTitle(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.md":     doc("title: Guide"),
		"guide/foo/foo.md":   doc(""),
		"guide/foo/index.md": doc("title: Foo overview"),
	}

	items := NewBuilder(fsys, Config{}).BuildSection(context.Background(), "guide")

	assertTexts(t, items, "Foo overview")
	if items[0].Link != "/guide/foo/foo" || items[0].IsGroup() {
		t.Fatalf("expected collapsed leaf /guide/foo/foo, got %+v", items[0])
	}
}
