package docnav

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-docnav/internal/commands"
	"github.com/goliatone/go-docnav/internal/di"
	"github.com/goliatone/go-docnav/internal/githook"
	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/watch"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// NavigationService exports the navigation service contract.
type NavigationService = interfaces.NavigationService

// RelocationService exports the relocation service contract.
type RelocationService = interfaces.RelocationService

type (
	NavItem           = interfaces.NavItem
	Sidebar           = interfaces.Sidebar
	Navigation        = interfaces.Navigation
	RelocateOptions   = interfaces.RelocateOptions
	RelocationResult  = interfaces.RelocationResult
	RelocatedDocument = interfaces.RelocatedDocument
	RelocatedAsset    = interfaces.RelocatedAsset
	RelocationFailure = interfaces.RelocationFailure
)

// Module is the top level façade over the navigation tools.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Navigation returns the configured navigation service.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Relocation returns the configured relocation service.
func (m *Module) Relocation() RelocationService {
	return m.container.RelocationService()
}

// Logger returns a logger scoped to name under the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), name)
}

// BuildNavigation builds the nav and sidebar without writing them.
func (m *Module) BuildNavigation(ctx context.Context) (Navigation, error) {
	return m.Navigation().BuildNavigation(ctx)
}

// GenerateSidebar rebuilds the navigation document and writes it to the
// configured output path.
func (m *Module) GenerateSidebar(ctx context.Context) error {
	return m.container.Handlers().BuildSidebar.Execute(ctx, commands.BuildSidebarCommand{Write: true})
}

// Relocate moves staged documents into their destination folders.
func (m *Module) Relocate(ctx context.Context, opts RelocateOptions) (RelocationResult, error) {
	var result RelocationResult
	err := m.container.Handlers().Relocate.Execute(ctx, commands.RelocateCommand{
		StagingDir: opts.StagingDir,
		DryRun:     opts.DryRun,
		ResultCallback: func(r interfaces.RelocationResult) {
			result = r
		},
	})
	return result, err
}

// FlushMetrics writes the metrics textfile when metrics are enabled.
func (m *Module) FlushMetrics() error {
	return m.container.FlushMetrics()
}

// Watch rebuilds the sidebar whenever documents under the content root change.
// It blocks until ctx is cancelled. Rebuilds go through the command
// dispatcher so a failed build is retried once.
func (m *Module) Watch(ctx context.Context) error {
	cfg := m.container.Config
	registry := commands.NewDispatcherRegistry(1)
	defer registry.Close()
	if err := registry.RegisterCommand(m.container.Handlers().BuildSidebar); err != nil {
		return err
	}

	watcher, err := watch.New(watch.Config{
		Root:       cfg.Content.Root,
		EnsureDirs: stagingBelowRoot(cfg),
		Extension:  cfg.Content.Extension,
		Debounce:   cfg.Watch.Debounce,
		Trigger: func(ctx context.Context) error {
			if err := commands.Dispatch(ctx, commands.BuildSidebarCommand{Write: true}); err != nil {
				return err
			}
			return m.FlushMetrics()
		},
		Logger: logging.WatchLogger(m.container.LoggerProvider()),
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// PostMerge regenerates the sidebar when the last merge touched documents
// under Hook.WatchPrefix. It reports whether a rebuild ran.
func (m *Module) PostMerge(ctx context.Context) (bool, error) {
	return m.postMerge(ctx, githook.GitCLI{})
}

func (m *Module) postMerge(ctx context.Context, lister githook.ChangeLister) (bool, error) {
	cfg := m.container.Config
	started := time.Now()
	hook, err := githook.New(githook.Config{
		Lister:    lister,
		Prefix:    cfg.Hook.WatchPrefix,
		Extension: cfg.Content.Extension,
		OldRev:    cfg.Hook.OldRev,
		NewRev:    cfg.Hook.NewRev,
		Trigger:   m.GenerateSidebar,
		Logger:    logging.HookLogger(m.container.LoggerProvider()),
	})
	if err != nil {
		return false, err
	}
	ran, err := hook.Run(ctx)
	m.container.Metrics().ObserveOperation("postmerge", started, err)
	if err != nil {
		return ran, fmt.Errorf("post-merge: %w", err)
	}
	return ran, m.FlushMetrics()
}

func stagingBelowRoot(cfg Config) []string {
	rel, err := filepath.Rel(cfg.Content.Root, cfg.Relocation.StagingDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{rel}
}
