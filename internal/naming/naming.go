// Package naming holds the string rules shared by the navigation builder and
// the relocation utility: name normalization, slugs and numeric ordering
// prefixes such as "2 - Installation".
package naming

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var orderPrefix = regexp.MustCompile(`^(\d+)\s*-\s*`)

// Normalize folds a file or directory name for conflict detection: accents
// are stripped, characters outside [A-Za-z0-9_], whitespace and '-' are
// dropped, whitespace runs become a single '-' and the result is lowercased.
func Normalize(name string) string {
	stripped := stripMarks(name)

	var b strings.Builder
	b.Grow(len(stripped))
	inSpace := false
	for _, r := range stripped {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
		case isWordRune(r) || r == '-':
			b.WriteRune(unicode.ToLower(r))
			inSpace = false
		}
	}
	return b.String()
}

// Slug derives the canonical path segment for a title. It applies Normalize
// to the trimmed title.
func Slug(title string) string {
	return Normalize(strings.TrimSpace(title))
}

// OrderPrefix returns the numeric prefix of a name like "3 - Reports".
func OrderPrefix(name string) (int, bool) {
	match := orderPrefix.FindStringSubmatch(name)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}

// StripOrderPrefix removes a leading "<digits> - " prefix.
func StripOrderPrefix(name string) string {
	return orderPrefix.ReplaceAllString(name, "")
}

// FormatSegment turns a path segment into a display label: the numeric prefix
// is removed and the first letter upper-cased. When stripping leaves nothing,
// the raw segment is returned.
func FormatSegment(segment string) string {
	label := StripOrderPrefix(segment)
	if label == "" {
		return segment
	}
	return Capitalize(label)
}

// Capitalize upper-cases the first rune of value.
func Capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return strings.ToUpper(string(r)) + value[size:]
}

// HasExtension reports whether name ends in ext, ignoring case, so "Guide.MD"
// counts as a ".md" document.
func HasExtension(name, ext string) bool {
	return ext != "" && len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}

// TrimExtension removes ext from name when present, ignoring case.
func TrimExtension(name, ext string) string {
	if !HasExtension(name, ext) {
		return name
	}
	return name[:len(name)-len(ext)]
}

func stripMarks(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
