package logger

import (
	"github.com/nativeblock/gonativeblock/loginterface"
)

// Re-export types from loginterface package to avoid circular dependencies
// while maintaining a clean internal API
type (
	LogEntry    = loginterface.LogEntry
	Logger      = loginterface.Logger
	ContextHook = loginterface.ContextHook
)
