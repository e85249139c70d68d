package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// headingParser only builds an AST; nothing is rendered. GFM is enabled so
// tables and task lists in the body parse the same way the site renders them.
var headingParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// HasTitleHeading reports whether body contains a level-1 heading.
func HasTitleHeading(body []byte) bool {
	doc := headingParser.Parse(text.NewReader(body))

	found := false
	// The walker never returns an error, so neither does Walk.
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := node.(*ast.Heading); ok && heading.Level == 1 {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// InjectTitleHeading prepends "# title" to the body of source, keeping the
// metadata block in place. Documents that already have a level-1 heading, or
// an empty title, are returned unchanged with injected=false.
func InjectTitleHeading(source []byte, title string) (out []byte, injected bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return source, false
	}

	block, body := SplitFrontMatter(source)
	if HasTitleHeading(body) {
		return source, false
	}

	var buf bytes.Buffer
	buf.Grow(len(source) + len(title) + 4)
	buf.Write(block)
	if len(block) > 0 && !bytes.HasSuffix(block, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString("# ")
	buf.WriteString(title)
	buf.WriteString("\n\n")
	buf.Write(bytes.TrimLeft(body, "\r\n"))
	return buf.Bytes(), true
}
