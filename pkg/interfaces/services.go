package interfaces

import "context"

// NavigationService builds and persists the documentation navigation.
type NavigationService interface {
	// BuildNavigation builds the top-level nav and the sidebar of every
	// configured section.
	BuildNavigation(ctx context.Context) (Navigation, error)
	// BuildSidebar builds the sidebar for the given sections only.
	BuildSidebar(ctx context.Context, sections []string) (Sidebar, error)
	// WriteNavigation persists nav where the renderer reads it.
	WriteNavigation(ctx context.Context, nav Navigation) error
}

// NavigationWriter persists a navigation document.
type NavigationWriter interface {
	Write(nav Navigation) error
}

// RelocateOptions tunes a single relocation run.
type RelocateOptions struct {
	// StagingDir overrides the configured staging directory when set.
	StagingDir string
	DryRun     bool
}

// RelocationService moves staged documents into the content tree.
type RelocationService interface {
	Relocate(ctx context.Context, opts RelocateOptions) (RelocationResult, error)
}
