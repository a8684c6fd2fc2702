// Package loginterface defines the logging interface used by gonativeblock.
// If you want to plug in a custom logger, implement the Logger interface defined in this package.
package loginterface

import (
	"context"
	"io"

	"github.com/nativeblock/gonativeblock/nblog"
)

// ContextHook is a client-defined hook that can be used to insert log
// fields based on the Context.
type ContextHook func(context.Context) string

// LogEntry allows for logging using a snapshot of field values.
// No implementation-specific logging details should be placed into this interface.
type LogEntry interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Logger abstracts away the underlying logging mechanism.
type Logger interface {
	LogEntry
	WithField(key string, value interface{}) LogEntry
	WithFields(fields map[string]any) LogEntry

	SetLogLevel(level string) error
	SetLogLevelInt(level nblog.Level) error
	GetLogLevel() string
	GetLogLevelInt() nblog.Level
	WithContext(ctx context.Context) LogEntry
	SetOutput(output io.Writer)
}
