package logging

import (
	"maps"

	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports interfaces.FieldsLogger. Nil loggers and empty maps pass through.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// Or returns logger, or a no-op logger when logger is nil.
func Or(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}
