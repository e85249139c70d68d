package di_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docnav/internal/commands"
	"github.com/goliatone/go-docnav/internal/di"
	"github.com/goliatone/go-docnav/internal/runtimeconfig"
	"github.com/goliatone/go-docnav/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Root = dir
	cfg.Content.Sections = []string{"guide"}
	cfg.Relocation.StagingDir = filepath.Join(dir, "guide")
	cfg.Relocation.DestinationDir = filepath.Join(dir, "guide")
	cfg.Relocation.AssetsDir = filepath.Join(dir, "public", "images")
	cfg.Output.Path = filepath.Join(dir, ".vitepress", "sidebar.json")
	return cfg
}

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"guide/index.md":       {Data: []byte("---\ntitle: Guide\n---\n")},
		"guide/intro.md":       {Data: []byte("---\ntitle: Introduction\n---\nbody\n")},
		"guide/setup/index.md": {Data: []byte("# Setup\n")},
		"guide/setup/linux.md": {Data: []byte("# Linux\n")},
		"public/logo.png":      {Data: []byte("png")},
	}
}

type recordingWriter struct {
	written []interfaces.Navigation
}

func (w *recordingWriter) Write(nav interfaces.Navigation) error {
	w.written = append(w.written, nav)
	return nil
}

func TestNewContainerLogsConfiguration(t *testing.T) {
	rec := newRecordingProvider()

	if _, err := di.NewContainer(testConfig(t), di.WithLoggerProvider(rec), di.WithContentFS(contentFS())); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "docnav" {
		t.Fatalf("expected module field docnav, got %v", got)
	}
	if got := entry.fields["sections"]; got != "guide" {
		t.Fatalf("expected sections field guide, got %v", got)
	}
	if got := entry.fields["metrics"]; got != false {
		t.Fatalf("expected metrics disabled, got %v", got)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Content.Root = ""

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestContainerBuildSidebarHandlerWritesNavigation(t *testing.T) {
	writer := &recordingWriter{}
	container, err := di.NewContainer(testConfig(t),
		di.WithLoggerProvider(newRecordingProvider()),
		di.WithContentFS(contentFS()),
		di.WithNavigationWriter(writer),
	)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if err := container.Handlers().BuildSidebar.Execute(context.Background(), commands.BuildSidebarCommand{Write: true}); err != nil {
		t.Fatalf("execute build sidebar: %v", err)
	}
	if len(writer.written) != 1 {
		t.Fatalf("expected one write, got %d", len(writer.written))
	}
	items := writer.written[0].Sidebar["/guide/"]
	if len(items) == 0 {
		t.Fatalf("expected /guide/ sidebar entries, got %#v", writer.written[0].Sidebar)
	}
	found := false
	for _, item := range items {
		if item.Text == "Introduction" && item.Link == "/guide/intro" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Introduction page in %#v", items)
	}
}

func TestContainerMetricsAndTextfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = true
	cfg.Metrics.TextfilePath = filepath.Join(t.TempDir(), "docnav.prom")

	container, err := di.NewContainer(cfg,
		di.WithLoggerProvider(newRecordingProvider()),
		di.WithContentFS(contentFS()),
		di.WithNavigationWriter(&recordingWriter{}),
	)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.Metrics() == nil {
		t.Fatalf("expected metrics to be configured")
	}

	if err := container.Handlers().BuildSidebar.Execute(context.Background(), commands.BuildSidebarCommand{}); err != nil {
		t.Fatalf("execute build sidebar: %v", err)
	}
	if got := testutil.CollectAndCount(container.Metrics().NavigationBuildsTotal); got == 0 {
		t.Fatalf("expected navigation build samples")
	}
	if got := testutil.CollectAndCount(container.Metrics().OperationDurationSeconds); got == 0 {
		t.Fatalf("expected operation duration samples")
	}

	if err := container.FlushMetrics(); err != nil {
		t.Fatalf("flush metrics: %v", err)
	}
	data, err := os.ReadFile(cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "docnav_") {
		t.Fatalf("expected docnav metrics in textfile, got %q", data)
	}
}

func TestContainerRelocationServiceHandlesMissingStaging(t *testing.T) {
	container, err := di.NewContainer(testConfig(t), di.WithLoggerProvider(newRecordingProvider()), di.WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	result, err := container.RelocationService().Relocate(context.Background(), interfaces.RelocateOptions{})
	if err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if len(result.Moved) != 0 || len(result.Failed) != 0 {
		t.Fatalf("expected empty result, got %#v", result)
	}
}

func TestContainerGologgerProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"

	container, err := di.NewContainer(cfg, di.WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatalf("expected logger provider")
	}
}

type recordingProvider struct {
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{entries: []recordedEntry{}}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{
		provider: p,
		fields: map[string]any{
			"logger": name,
		},
	}
}

func (p *recordingProvider) record(entry recordedEntry) {
	p.entries = append(p.entries, entry)
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{
		provider: l.provider,
		fields:   merged,
	}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return &recordingLogger{
		provider: l.provider,
		fields:   cloneFields(l.fields),
	}
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := cloneFields(l.fields)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			break
		}
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		fields[key] = args[i+1]
	}
	l.provider.record(recordedEntry{
		level:  level,
		msg:    msg,
		fields: fields,
	})
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}
