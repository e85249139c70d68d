package commands

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

type stubNavigationService struct {
	buildCalls    int
	sidebarCalls  [][]string
	writes        []interfaces.Navigation
	buildErr      error
	navigationOut interfaces.Navigation
}

func (s *stubNavigationService) BuildNavigation(context.Context) (interfaces.Navigation, error) {
	s.buildCalls++
	return s.navigationOut, s.buildErr
}

func (s *stubNavigationService) BuildSidebar(_ context.Context, sections []string) (interfaces.Sidebar, error) {
	s.sidebarCalls = append(s.sidebarCalls, sections)
	return interfaces.Sidebar{"/only/": {interfaces.Page("Only", "/only/a")}}, nil
}

func (s *stubNavigationService) WriteNavigation(_ context.Context, nav interfaces.Navigation) error {
	s.writes = append(s.writes, nav)
	return nil
}

type stubRelocationService struct {
	opts   []interfaces.RelocateOptions
	result interfaces.RelocationResult
	err    error
}

func (s *stubRelocationService) Relocate(_ context.Context, opts interfaces.RelocateOptions) (interfaces.RelocationResult, error) {
	s.opts = append(s.opts, opts)
	return s.result, s.err
}

func TestBuildSidebarHandlerBuildsAndWrites(t *testing.T) {
	svc := &stubNavigationService{navigationOut: interfaces.Navigation{
		Sidebar: interfaces.Sidebar{"/guide/": {interfaces.Page("A", "/guide/a")}},
	}}
	h := NewBuildSidebarHandler(svc, logging.NoOp())

	if err := h.Execute(context.Background(), BuildSidebarCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if svc.buildCalls != 1 || len(svc.writes) != 0 {
		t.Fatalf("expected build without write, got builds=%d writes=%d", svc.buildCalls, len(svc.writes))
	}

	if err := h.Execute(context.Background(), BuildSidebarCommand{Write: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.writes) != 1 || len(svc.writes[0].Sidebar["/guide/"]) != 1 {
		t.Fatalf("expected written navigation, got %+v", svc.writes)
	}
}

func TestBuildSidebarHandlerRestrictsSections(t *testing.T) {
	svc := &stubNavigationService{}
	h := NewBuildSidebarHandler(svc, nil)

	if err := h.Execute(context.Background(), BuildSidebarCommand{Sections: []string{"only"}, Write: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.sidebarCalls) != 1 || svc.sidebarCalls[0][0] != "only" {
		t.Fatalf("expected sidebar restricted to sections, got %v", svc.sidebarCalls)
	}
	if _, ok := svc.writes[0].Sidebar["/only/"]; !ok {
		t.Fatalf("expected restricted sidebar to be written, got %+v", svc.writes[0].Sidebar)
	}
}

func TestBuildSidebarHandlerWrapsServiceErrors(t *testing.T) {
	svc := &stubNavigationService{buildErr: errors.New("disk gone")}
	err := NewBuildSidebarHandler(svc, nil).Execute(context.Background(), BuildSidebarCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestBuildSidebarHandlerRejectsInvalidMessage(t *testing.T) {
	svc := &stubNavigationService{}
	err := NewBuildSidebarHandler(svc, nil).Execute(context.Background(), BuildSidebarCommand{Sections: []string{".."}})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if svc.buildCalls != 0 {
		t.Fatal("expected service not to run")
	}
}

func TestRelocateHandlerForwardsOptions(t *testing.T) {
	svc := &stubRelocationService{}
	h := NewRelocateHandler(svc, nil)

	if err := h.Execute(context.Background(), RelocateCommand{StagingDir: "staging", DryRun: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.opts) != 1 || svc.opts[0].StagingDir != "staging" || !svc.opts[0].DryRun {
		t.Fatalf("unexpected options %+v", svc.opts)
	}
}

func TestRelocateHandlerStrictFailsOnPartialBatch(t *testing.T) {
	svc := &stubRelocationService{result: interfaces.RelocationResult{
		Failed: []interfaces.RelocationFailure{{Path: "a.md", Err: errors.New("nope")}},
	}}

	if err := NewRelocateHandler(svc, nil).Execute(context.Background(), RelocateCommand{}); err != nil {
		t.Fatalf("expected lenient run to succeed, got %v", err)
	}

	err := NewRelocateHandler(svc, nil).Execute(context.Background(), RelocateCommand{Strict: true})
	if err == nil {
		t.Fatal("expected strict run to fail")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRelocateHandlerReportsPartialResultOnError(t *testing.T) {
	svc := &stubRelocationService{
		result: interfaces.RelocationResult{Moved: []interfaces.RelocatedDocument{{Source: "a.md", Destination: "x/a.md"}}},
		err:    context.Canceled,
	}

	var got interfaces.RelocationResult
	err := NewRelocateHandler(svc, nil).Execute(context.Background(), RelocateCommand{
		ResultCallback: func(result interfaces.RelocationResult) { got = result },
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if len(got.Moved) != 1 || got.Moved[0].Destination != "x/a.md" {
		t.Fatalf("expected partial result, got %+v", got)
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterCommands(reg, &stubNavigationService{}, &stubRelocationService{}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set.BuildSidebar == nil || set.Relocate == nil {
		t.Fatalf("expected handlers, got %+v", set)
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(reg.handlers))
	}

	if _, err := RegisterCommands(nil, nil, &stubRelocationService{}, nil); err == nil {
		t.Fatal("expected nil navigation service to fail")
	}
}
