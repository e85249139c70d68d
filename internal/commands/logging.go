package commands

import (
	"strings"

	"github.com/goliatone/go-docnav/internal/logging"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// CommandLogger returns a logger for command handlers of module, tagged with
// consistent structured fields.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, "docnav.commands."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
