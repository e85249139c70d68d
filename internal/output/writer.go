// Package output serializes the navigation document and writes it where the
// site renderer picks it up.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/validation"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// Format selects the encoding of the written document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for formats other than json and yaml.
var ErrUnsupportedFormat = errors.New("output: unsupported format")

// ParseFormat resolves a configured format name. Empty values infer the format
// from path's extension and default to JSON.
func ParseFormat(value, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
	}
}

// Encode validates nav against the navigation schema and renders it.
func Encode(nav interfaces.Navigation, format Format) ([]byte, error) {
	nav = normalize(nav)

	encoded, err := json.MarshalIndent(nav, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("output: encode json: %w", err)
	}
	if err := validation.ValidateNavigationJSON(encoded); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	switch format {
	case FormatJSON, "":
		return append(encoded, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(nav); err != nil {
			return nil, fmt.Errorf("output: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("output: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Writer persists navigation documents to a fixed path.
type Writer struct {
	path   string
	format Format
	logger interfaces.Logger
}

// NewWriter builds a Writer for path.
func NewWriter(path string, format Format, logger interfaces.Logger) *Writer {
	return &Writer{path: path, format: format, logger: logging.Or(logger)}
}

// Path returns the destination file.
func (w *Writer) Path() string {
	return w.path
}

// Write encodes nav and replaces the destination file. The document is
// written to a sibling temporary file first so readers never observe a
// partial write.
func (w *Writer) Write(nav interfaces.Navigation) error {
	if strings.TrimSpace(w.path) == "" {
		return errors.New("output: path required")
	}
	data, err := Encode(nav, w.format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("output: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("output: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("output: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("output: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("output: replace %s: %w", w.path, err)
	}

	w.logger.Info("output.written", "path", w.path, "format", string(w.format), "sections", len(nav.Sidebar), "bytes", len(data))
	return nil
}

func normalize(nav interfaces.Navigation) interfaces.Navigation {
	if nav.Nav == nil {
		nav.Nav = []interfaces.NavItem{}
	}
	if nav.Sidebar == nil {
		nav.Sidebar = interfaces.Sidebar{}
	}
	for key, items := range nav.Sidebar {
		if items == nil {
			nav.Sidebar[key] = []interfaces.NavItem{}
		}
	}
	return nav
}
