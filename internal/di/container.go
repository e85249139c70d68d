package di

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-docnav/internal/commands"
	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/internal/logging/console"
	"github.com/goliatone/go-docnav/internal/logging/gologger"
	"github.com/goliatone/go-docnav/internal/metrics"
	"github.com/goliatone/go-docnav/internal/navigation"
	"github.com/goliatone/go-docnav/internal/output"
	"github.com/goliatone/go-docnav/internal/relocation"
	"github.com/goliatone/go-docnav/internal/runtimeconfig"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// Version is recorded on the docnav_info metric.
var Version = "dev"

// Container wires module dependencies from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	contentFS      fs.FS
	writer         interfaces.NavigationWriter
	metrics        *metrics.Metrics
	clock          func() time.Time

	navigationSvc *navigation.Service
	relocationSvc *relocation.Service
	handlers      *commands.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentFS replaces os.DirFS(Content.Root) as the navigation source.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.contentFS = fsys
		}
	}
}

// WithNavigationWriter replaces the file writer for the navigation document.
func WithNavigationWriter(writer interfaces.NavigationWriter) Option {
	return func(c *Container) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithMetrics injects a metrics instance, enabling instrumentation even when
// Metrics.Enabled is false.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Container) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock fixes the clock used for generated asset names.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if c.metrics == nil && cfg.Metrics.Enabled {
		c.metrics = metrics.New(Version)
	}
	if err := c.configureNavigation(); err != nil {
		return nil, err
	}
	if err := c.configureRelocation(); err != nil {
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "docnav").Debug("container.configured",
		"content_root", cfg.Content.Root,
		"sections", strings.Join(cfg.Content.Sections, ","),
		"metrics", c.metrics != nil,
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure logging: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   os.Stderr,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureNavigation() error {
	cfg := c.Config
	if c.contentFS == nil {
		c.contentFS = os.DirFS(cfg.Content.Root)
	}
	if c.writer == nil {
		format, err := output.ParseFormat(cfg.Output.Format, cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("configure output: %w", err)
		}
		c.writer = output.NewWriter(cfg.Output.Path, format, logging.ModuleLogger(c.loggerProvider, "docnav.output"))
	}

	var observer navigation.Observer
	if c.metrics != nil {
		observer = c.metrics
	}
	builder := navigation.NewBuilder(c.contentFS, navigation.Config{
		Extension:        cfg.Content.Extension,
		IndexName:        cfg.Content.IndexName,
		Locale:           cfg.Navigation.Locale,
		DirectoriesFirst: cfg.Navigation.DirectoriesFirst,
		Logger:           logging.NavigationLogger(c.loggerProvider),
		Observer:         observer,
	})
	c.navigationSvc = navigation.NewService(builder, navigation.ServiceConfig{
		Sections: cfg.Content.Sections,
		Nav: navigation.NavConfig{
			HomeText: cfg.Navigation.HomeText,
			Exclude:  cfg.Navigation.ExcludeNav,
		},
		Writer: c.writer,
	})
	return nil
}

func (c *Container) configureRelocation() error {
	cfg := c.Config.Relocation
	var observer relocation.Observer
	if c.metrics != nil {
		observer = c.metrics
	}
	svc, err := relocation.NewService(relocation.Config{
		StagingDir:         cfg.StagingDir,
		DestinationDir:     cfg.DestinationDir,
		AssetsDir:          cfg.AssetsDir,
		AssetURLPrefix:     cfg.AssetURLPrefix,
		Extension:          c.Config.Content.Extension,
		InjectTitleHeading: cfg.InjectTitleHeading,
		Logger:             logging.RelocationLogger(c.loggerProvider),
		Clock:              c.clock,
	}, observer)
	if err != nil {
		return fmt.Errorf("configure relocation: %w", err)
	}
	c.relocationSvc = svc
	return nil
}

func (c *Container) configureCommands() error {
	opts := []commands.Option{}
	if c.metrics != nil {
		opts = append(opts,
			commands.WithBuildSidebarOptions(
				commands.WithTelemetry(
					commands.DefaultTelemetry[commands.BuildSidebarCommand](logging.CommandsLogger(c.loggerProvider)),
					commands.MetricsTelemetry[commands.BuildSidebarCommand](c.metrics),
				),
			),
			commands.WithRelocateOptions(
				commands.WithTelemetry(
					commands.DefaultTelemetry[commands.RelocateCommand](logging.CommandsLogger(c.loggerProvider)),
					commands.MetricsTelemetry[commands.RelocateCommand](c.metrics),
				),
			),
		)
	}
	set, err := commands.RegisterCommands(nil, c.navigationSvc, c.relocationSvc, c.loggerProvider, opts...)
	if err != nil {
		return err
	}
	c.handlers = set
	return nil
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// NavigationService returns the navigation service.
func (c *Container) NavigationService() interfaces.NavigationService {
	return c.navigationSvc
}

// RelocationService returns the relocation service.
func (c *Container) RelocationService() interfaces.RelocationService {
	return c.relocationSvc
}

// Handlers returns the command handlers bound to the services.
func (c *Container) Handlers() *commands.HandlerSet {
	return c.handlers
}

// Metrics returns the metrics instance, nil when metrics are disabled.
func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

// FlushMetrics writes the metrics textfile. It is a no-op without metrics or
// without a textfile path.
func (c *Container) FlushMetrics() error {
	path := strings.TrimSpace(c.Config.Metrics.TextfilePath)
	if c.metrics == nil || path == "" {
		return nil
	}
	return c.metrics.WriteTextfile(path)
}
