package commands

import (
	"context"
	"fmt"
	"sync"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// DispatcherRegistry subscribes handlers to the go-command dispatcher so
// callers can trigger them with Dispatch instead of holding handler
// references.
type DispatcherRegistry struct {
	retries int

	mu          sync.Mutex
	unsubscribe []func()
}

// NewDispatcherRegistry retries failed executions up to retries times.
func NewDispatcherRegistry(retries int) *DispatcherRegistry {
	if retries < 0 {
		retries = 0
	}
	return &DispatcherRegistry{retries: retries}
}

// RegisterCommand implements CommandRegistry.
func (r *DispatcherRegistry) RegisterCommand(handler any) error {
	var unsubscribe func()
	switch h := handler.(type) {
	case *BuildSidebarHandler:
		sub := dispatcher.SubscribeCommand(h, runner.WithMaxRetries(r.retries))
		unsubscribe = sub.Unsubscribe
	case *RelocateHandler:
		sub := dispatcher.SubscribeCommand(h, runner.WithMaxRetries(r.retries))
		unsubscribe = sub.Unsubscribe
	default:
		return fmt.Errorf("command registration: unsupported handler %T", handler)
	}

	r.mu.Lock()
	r.unsubscribe = append(r.unsubscribe, unsubscribe)
	r.mu.Unlock()
	return nil
}

// Close removes every subscription made through the registry.
func (r *DispatcherRegistry) Close() {
	r.mu.Lock()
	subs := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	for _, unsubscribe := range subs {
		unsubscribe()
	}
}

// Dispatch sends msg to whichever handler is subscribed for its type.
func Dispatch[T command.Message](ctx context.Context, msg T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return dispatcher.Dispatch(ctx, msg)
}
