package relocation

import (
	"context"
	"strings"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// Observer receives the result of every relocation run.
type Observer interface {
	ObserveRelocation(result interfaces.RelocationResult)
}

// Service implements interfaces.RelocationService. Each call builds a fresh
// Relocator so per-run options never leak between runs.
type Service struct {
	cfg      Config
	observer Observer
}

var _ interfaces.RelocationService = (*Service)(nil)

// NewService validates cfg and returns a Service.
func NewService(cfg Config, observer Observer) (*Service, error) {
	if _, err := New(cfg); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, observer: observer}, nil
}

// Relocate runs one relocation batch.
func (s *Service) Relocate(ctx context.Context, opts interfaces.RelocateOptions) (interfaces.RelocationResult, error) {
	cfg := s.cfg
	cfg.DryRun = cfg.DryRun || opts.DryRun
	if staging := strings.TrimSpace(opts.StagingDir); staging != "" {
		cfg.StagingDir = staging
	}

	relocator, err := New(cfg)
	if err != nil {
		return interfaces.RelocationResult{}, err
	}
	result, err := relocator.Run(ctx)
	if s.observer != nil && !cfg.DryRun {
		s.observer.ObserveRelocation(result)
	}
	return result, err
}
