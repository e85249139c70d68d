package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-docnav"
	"github.com/goliatone/go-docnav/cmd/docnav/internal/bootstrap"
	"github.com/goliatone/go-docnav/internal/logging"
)

type stubRuntime struct {
	sidebarCalls  int
	relocateCalls int
	watchCalls    int
	hookCalls     int
	flushCalls    int
	result        docnav.RelocationResult
	err           error
}

func (s *stubRuntime) GenerateSidebar(context.Context) error {
	s.sidebarCalls++
	return s.err
}

func (s *stubRuntime) Relocate(context.Context, docnav.RelocateOptions) (docnav.RelocationResult, error) {
	s.relocateCalls++
	return s.result, s.err
}

func (s *stubRuntime) Watch(context.Context) error {
	s.watchCalls++
	return s.err
}

func (s *stubRuntime) PostMerge(context.Context) (bool, error) {
	s.hookCalls++
	return s.err == nil, s.err
}

func (s *stubRuntime) FlushMetrics() error {
	s.flushCalls++
	return nil
}

func stubBuilder(rt *stubRuntime, seen *bootstrap.Options) func(bootstrap.Options) (*bootstrap.Module, error) {
	return func(opts bootstrap.Options) (*bootstrap.Module, error) {
		if seen != nil {
			*seen = opts
		}
		return &bootstrap.Module{Module: rt, Logger: logging.NoOp(), Config: docnav.DefaultConfig()}, nil
	}
}

func TestRunSidebarGeneratesAndFlushes(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	rt := &stubRuntime{}
	var seen bootstrap.Options
	moduleBuilder = stubBuilder(rt, &seen)

	if err := runSidebar([]string{"-config", "docnav.toml"}); err != nil {
		t.Fatalf("runSidebar returned error: %v", err)
	}
	if rt.sidebarCalls != 1 || rt.flushCalls != 1 {
		t.Fatalf("expected one generate and one flush, got %d/%d", rt.sidebarCalls, rt.flushCalls)
	}
	if seen.ConfigPath != "docnav.toml" {
		t.Fatalf("expected config path docnav.toml, got %q", seen.ConfigPath)
	}
}

func TestRunSidebarPropagatesErrors(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = stubBuilder(&stubRuntime{err: errors.New("boom")}, nil)

	err := runSidebar(nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected boom error, got %v", err)
	}
}
