package bootstrap

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docnav"
	"github.com/goliatone/go-docnav/internal/di"
	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// Options captures configuration for docnav CLI bootstraps.
type Options struct {
	// ConfigPath points at an optional TOML file; missing files use defaults.
	ConfigPath     string
	LoggerProvider interfaces.LoggerProvider
}

// Runtime is the subset of the module the commands drive.
type Runtime interface {
	GenerateSidebar(ctx context.Context) error
	Relocate(ctx context.Context, opts docnav.RelocateOptions) (docnav.RelocationResult, error)
	Watch(ctx context.Context) error
	PostMerge(ctx context.Context) (bool, error)
	FlushMetrics() error
}

// Module wraps the docnav module and a CLI logger.
type Module struct {
	Module Runtime
	Logger interfaces.Logger
	Config docnav.Config
}

// BuildModule loads configuration and constructs a docnav module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := docnav.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docnav.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docnav module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "docnav.cli"),
		Config: cfg,
	}, nil
}
