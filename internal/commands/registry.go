package commands

import (
	"errors"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterCommands.
type HandlerSet struct {
	BuildSidebar *BuildSidebarHandler
	Relocate     *RelocateHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	sidebarOpts  []HandlerOption[BuildSidebarCommand]
	relocateOpts []HandlerOption[RelocateCommand]
}

// WithBuildSidebarOptions forwards options to the BuildSidebarHandler constructor.
func WithBuildSidebarOptions(opts ...HandlerOption[BuildSidebarCommand]) Option {
	return func(cfg *options) {
		cfg.sidebarOpts = append(cfg.sidebarOpts, opts...)
	}
}

// WithRelocateOptions forwards options to the RelocateHandler constructor.
func WithRelocateOptions(opts ...HandlerOption[RelocateCommand]) Option {
	return func(cfg *options) {
		cfg.relocateOpts = append(cfg.relocateOpts, opts...)
	}
}

// RegisterCommands builds the docnav handlers and registers them with reg
// when one is supplied. The handlers are returned so callers can execute them
// directly.
func RegisterCommands(reg CommandRegistry, nav interfaces.NavigationService, reloc interfaces.RelocationService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if nav == nil {
		return nil, errors.New("command registration: navigation service is nil")
	}
	if reloc == nil {
		return nil, errors.New("command registration: relocation service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{
		BuildSidebar: NewBuildSidebarHandler(nav, CommandLogger(provider, "navigation"), cfg.sidebarOpts...),
		Relocate:     NewRelocateHandler(reloc, CommandLogger(provider, "relocation"), cfg.relocateOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.BuildSidebar); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Relocate); err != nil {
			return nil, err
		}
	}
	return set, nil
}
