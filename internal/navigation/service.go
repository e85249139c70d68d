package navigation

import (
	"context"
	"errors"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// ErrWriterNotConfigured is returned by WriteNavigation when the service has
// no output configured.
var ErrWriterNotConfigured = errors.New("navigation: writer not configured")

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Sections []string
	Nav      NavConfig
	Writer   interfaces.NavigationWriter
}

// Service implements interfaces.NavigationService over a Builder.
type Service struct {
	builder  *Builder
	sections []string
	nav      NavConfig
	writer   interfaces.NavigationWriter
}

var _ interfaces.NavigationService = (*Service)(nil)

// NewService wraps builder.
func NewService(builder *Builder, cfg ServiceConfig) *Service {
	return &Service{
		builder:  builder,
		sections: append([]string(nil), cfg.Sections...),
		nav:      cfg.Nav,
		writer:   cfg.Writer,
	}
}

// BuildNavigation builds the nav bar and the sidebar of every configured section.
func (s *Service) BuildNavigation(ctx context.Context) (interfaces.Navigation, error) {
	sidebar, err := s.BuildSidebar(ctx, s.sections)
	if err != nil {
		return interfaces.Navigation{}, err
	}
	return interfaces.Navigation{
		Nav:     s.builder.BuildNav(s.nav),
		Sidebar: sidebar,
	}, nil
}

// BuildSidebar builds the given sections. The build itself never fails; the
// only error is a cancelled context.
func (s *Service) BuildSidebar(ctx context.Context, sections []string) (interfaces.Sidebar, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sidebar := s.builder.BuildSidebar(ctx, sections)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sidebar, nil
}

// WriteNavigation hands nav to the configured writer.
func (s *Service) WriteNavigation(ctx context.Context, nav interfaces.Navigation) error {
	if s.writer == nil {
		return ErrWriterNotConfigured
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return s.writer.Write(nav)
}
