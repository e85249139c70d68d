package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// ErrMalformedFrontMatter reports a metadata block that could not be decoded
// as YAML. Values recovered by the line scanner are still returned with it.
var ErrMalformedFrontMatter = errors.New("markdown: malformed frontmatter")

var utf8BOM = []byte("\ufeff")

var (
	fenceBlock = regexp.MustCompile(`\A---[ \t]*\r?\n([\s\S]*?)\r?\n---[ \t]*(?:\r?\n|\z)`)

	lineTitle       = lineMatcher("title")
	lineFolder      = lineMatcher("folder")
	lineDescription = lineMatcher("description")
	lineOrder       = regexp.MustCompile(`(?m)^[ \t]*order:[ \t]*["']?(\d+)`)
)

func lineMatcher(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + key + `:[ \t]*(.*?)[ \t]*\r?$`)
}

type frontMatterEnvelope struct {
	Title       string `yaml:"title"`
	Order       *int   `yaml:"order"`
	Folder      string `yaml:"folder"`
	Description string `yaml:"description"`
}

// ParseFrontMatter extracts the recognised metadata keys and returns the body
// that follows the block. Documents without a block yield the default record
// and the unchanged source. When the block is not valid YAML the keys are
// recovered line by line and the result is returned together with
// ErrMalformedFrontMatter, so callers may log the error and keep going.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	source = bytes.TrimPrefix(source, utf8BOM)
	if len(bytes.TrimSpace(source)) == 0 {
		return DefaultFrontMatter(), source, nil
	}

	var env frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err == nil {
		return envelopeToFrontMatter(env), body, nil
	}

	fm, rest := scanFrontMatter(source)
	return fm, rest, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
}

// ReadFrontMatter loads path from fsys and parses its metadata block. A read
// failure returns the default record together with the error.
func ReadFrontMatter(fsys fs.FS, path string) (interfaces.FrontMatter, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return DefaultFrontMatter(), fmt.Errorf("markdown read %s: %w", path, err)
	}
	fm, _, err := ParseFrontMatter(data)
	return fm, err
}

// DefaultFrontMatter is the record used for documents without metadata.
func DefaultFrontMatter() interfaces.FrontMatter {
	return interfaces.FrontMatter{Order: interfaces.DefaultOrder}
}

// SplitFrontMatter returns the raw metadata block (fences included) and the
// remainder of source. The block is empty when source has none.
func SplitFrontMatter(source []byte) ([]byte, []byte) {
	source = bytes.TrimPrefix(source, utf8BOM)
	loc := fenceBlock.FindIndex(source)
	if loc == nil {
		return nil, source
	}
	return source[:loc[1]], source[loc[1]:]
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	fm := DefaultFrontMatter()
	fm.Title = strings.TrimSpace(env.Title)
	fm.Folder = strings.TrimSpace(env.Folder)
	fm.Description = strings.TrimSpace(env.Description)
	if env.Order != nil && *env.Order >= 0 {
		fm.Order = *env.Order
		fm.HasOrder = true
	}
	return fm
}

// scanFrontMatter is the line-oriented fallback for blocks that are not valid
// YAML, e.g. unquoted titles containing ": ".
func scanFrontMatter(source []byte) (interfaces.FrontMatter, []byte) {
	fm := DefaultFrontMatter()

	match := fenceBlock.FindSubmatchIndex(source)
	if match == nil {
		return fm, source
	}
	block := source[match[2]:match[3]]
	body := source[match[1]:]

	fm.Title = firstGroup(lineTitle, block)
	fm.Folder = firstGroup(lineFolder, block)
	fm.Description = firstGroup(lineDescription, block)
	if raw := firstGroup(lineOrder, block); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			fm.Order = value
			fm.HasOrder = true
		}
	}
	return fm, body
}

func firstGroup(re *regexp.Regexp, block []byte) string {
	m := re.FindSubmatch(block)
	if m == nil {
		return ""
	}
	return unquote(strings.TrimSpace(string(m[1])))
}

// unquote strips one matching pair of outer quotes. Quotes inside the value,
// such as the apostrophe in "L'activité", are kept.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return strings.TrimSpace(value[1 : len(value)-1])
		}
	}
	return value
}
