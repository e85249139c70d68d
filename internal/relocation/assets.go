package relocation

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-docnav/internal/naming"
)

var (
	// ![alt](src "title") and ![alt](<src>)
	markdownImage = regexp.MustCompile(`!\[[^\]]*\]\(\s*<?([^)\s>]+)>?(?:\s+(?:"[^"]*"|'[^']*'))?\s*\)`)
	htmlImage     = regexp.MustCompile(`(?i)<img\b[^>]*?\bsrc\s*=\s*["']([^"']+)["']`)
)

// imageRef is the byte span of one image source inside a document.
type imageRef struct {
	start, end int
	src        string
}

func findImageRefs(content []byte) []imageRef {
	var refs []imageRef
	for _, re := range []*regexp.Regexp{markdownImage, htmlImage} {
		for _, m := range re.FindAllSubmatchIndex(content, -1) {
			refs = append(refs, imageRef{start: m[2], end: m[3], src: string(content[m[2]:m[3]])})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].start < refs[j].start })
	return refs
}

// rewriteRefs replaces every reference whose source has an entry in urls.
func rewriteRefs(content []byte, refs []imageRef, urls map[string]string) []byte {
	if len(urls) == 0 {
		return content
	}
	var out []byte
	last := 0
	for _, ref := range refs {
		target, ok := urls[ref.src]
		if !ok {
			continue
		}
		out = append(out, content[last:ref.start]...)
		out = append(out, target...)
		last = ref.end
	}
	return append(out, content[last:]...)
}

// localImagePath maps an image source to a path relative to the staging
// directory. ok is false for remote, inline and already-relocated sources.
func (r *Relocator) localImagePath(src string) (string, bool) {
	src = strings.TrimSpace(src)
	lower := strings.ToLower(src)
	switch {
	case src == "",
		strings.HasPrefix(src, "//"),
		strings.HasPrefix(src, "#"),
		strings.HasPrefix(lower, "data:"),
		strings.Contains(src, "://"),
		strings.HasPrefix(lower, "mailto:"):
		return "", false
	}
	if r.assetURLPrefix != "" && strings.HasPrefix(src, r.assetURLPrefix+"/") {
		return "", false
	}

	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	if unescaped, err := url.PathUnescape(src); err == nil {
		src = unescaped
	}

	cleaned := path.Clean("/" + src)
	if cleaned == "/" {
		return "", false
	}
	return filepath.FromSlash(strings.TrimPrefix(cleaned, "/")), true
}

// assetName builds "<unix-millis>-<random8>-<base-slug><ext>".
func (r *Relocator) assetName(source string) string {
	ext := strings.ToLower(filepath.Ext(source))
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		normalized = naming.Slug(base)
	}
	if normalized == "" {
		normalized = "image"
	}
	return fmt.Sprintf("%d-%s-%s%s", r.now().UnixMilli(), r.suffix(), normalized, ext)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
