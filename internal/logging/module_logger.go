package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const (
	rootModule       = "docnav"
	scannerModule    = "docnav.scanner"
	navigationModule = "docnav.navigation"
	relocationModule = "docnav.relocation"
	watchModule      = "docnav.watch"
	hookModule       = "docnav.hook"
	commandsModule   = "docnav.commands"
)

const (
	fieldDocumentPath = "path"
	fieldSection      = "section"
	fieldAction       = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per module.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ScannerLogger returns the logger namespace reserved for content tree scans.
func ScannerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scannerModule)
}

// NavigationLogger returns the logger namespace reserved for sidebar builds.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// RelocationLogger returns the logger namespace reserved for staged content moves.
func RelocationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, relocationModule)
}

// WatchLogger returns the logger namespace reserved for the content watcher.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// HookLogger returns the logger namespace reserved for git hook entry points.
func HookLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, hookModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithDocumentContext enriches logger with the document path, section and
// action being processed. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, section, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(section); trimmed != "" {
		fields[fieldSection] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
