package commands

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const (
	buildSidebarOperation = "navigation.build_sidebar"
	relocateOperation     = "relocation.relocate"
)

var (
	_ command.Commander[BuildSidebarCommand] = (*BuildSidebarHandler)(nil)
	_ command.Commander[RelocateCommand]     = (*RelocateHandler)(nil)
)

// BuildSidebarHandler regenerates navigation through a NavigationService.
type BuildSidebarHandler struct {
	inner *Handler[BuildSidebarCommand]
}

// NewBuildSidebarHandler binds a handler to service.
func NewBuildSidebarHandler(service interfaces.NavigationService, logger interfaces.Logger, opts ...HandlerOption[BuildSidebarCommand]) *BuildSidebarHandler {
	baseLogger := logging.Or(logger)

	exec := func(ctx context.Context, msg BuildSidebarCommand) error {
		if service == nil {
			return errors.New("navigation service not configured")
		}

		nav, err := service.BuildNavigation(ctx)
		if err != nil {
			return err
		}
		if len(msg.Sections) > 0 {
			if nav.Sidebar, err = service.BuildSidebar(ctx, msg.Sections); err != nil {
				return err
			}
		}

		entries := 0
		for _, items := range nav.Sidebar {
			entries += len(items)
		}
		logging.WithFields(baseLogger, map[string]any{
			"sections": len(nav.Sidebar),
			"entries":  entries,
			"nav":      len(nav.Nav),
		}).Info("navigation.command.build_sidebar.completed")

		if !msg.Write {
			return nil
		}
		return service.WriteNavigation(ctx, nav)
	}

	handlerOpts := []HandlerOption[BuildSidebarCommand]{
		WithLogger[BuildSidebarCommand](baseLogger),
		WithOperation[BuildSidebarCommand](buildSidebarOperation),
		WithMessageFields(func(msg BuildSidebarCommand) map[string]any {
			fields := map[string]any{"write": msg.Write}
			if len(msg.Sections) > 0 {
				fields["sections"] = msg.Sections
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSidebarHandler{inner: NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[BuildSidebarCommand].
func (h *BuildSidebarHandler) Execute(ctx context.Context, msg BuildSidebarCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RelocateHandler runs relocation batches through a RelocationService.
type RelocateHandler struct {
	inner *Handler[RelocateCommand]
}

// NewRelocateHandler binds a handler to service.
func NewRelocateHandler(service interfaces.RelocationService, logger interfaces.Logger, opts ...HandlerOption[RelocateCommand]) *RelocateHandler {
	baseLogger := logging.Or(logger)

	exec := func(ctx context.Context, msg RelocateCommand) error {
		if service == nil {
			return errors.New("relocation service not configured")
		}

		result, err := service.Relocate(ctx, interfaces.RelocateOptions{
			StagingDir: msg.StagingDir,
			DryRun:     msg.DryRun,
		})
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"moved_count":   len(result.Moved),
			"asset_count":   len(result.Assets),
			"failed_count":  len(result.Failed),
			"skipped_count": result.Skipped,
			"dry_run":       msg.DryRun,
		}).Info("relocation.command.relocate.completed")

		if msg.Strict && len(result.Failed) > 0 {
			return relocationIncomplete(len(result.Failed))
		}
		return nil
	}

	handlerOpts := []HandlerOption[RelocateCommand]{
		WithLogger[RelocateCommand](baseLogger),
		WithOperation[RelocateCommand](relocateOperation),
		WithMessageFields(func(msg RelocateCommand) map[string]any {
			fields := map[string]any{}
			if msg.StagingDir != "" {
				fields["staging_dir"] = msg.StagingDir
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RelocateHandler{inner: NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RelocateCommand].
func (h *RelocateHandler) Execute(ctx context.Context, msg RelocateCommand) error {
	return h.inner.Execute(ctx, msg)
}
