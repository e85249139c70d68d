package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/logging/console"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("docnav.navigation")
	logger = logger.(interfaces.FieldsLogger).WithFields(map[string]any{"module": "docnav.navigation"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"run_id": "build-42",
	})
	logger = logger.WithContext(ctx)

	logger.Info("navigation.section.built",
		"section", "guide",
		"items", 7,
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO navigation.section.built items=7 logger=docnav.navigation module=docnav.navigation run_id=build-42 section=guide"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("docnav.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("docnav.test").Warn("relocation.move.failed", "error", errors.New("permission denied"), "orphan")

	got := buf.String()
	if !strings.Contains(got, `error="permission denied"`) {
		t.Fatalf("expected quoted error value, got %s", got)
	}
	if !strings.Contains(got, "field_1=orphan") {
		t.Fatalf("expected dangling arg to be kept positionally, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
		"":        console.LevelInfo,
		"bogus":   console.LevelInfo,
	}
	for input, want := range cases {
		if got := console.ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
