package logger

import (
	"errors"
	"sync"
)

// The global logger lets internal packages log without importing the root
// package (avoiding circular dependencies).
var (
	loggerAccessorMu sync.Mutex
	globalLogger     Logger = newRawLogger(defaultOutput)
)

// GetLogger returns the global logger for use by internal packages
func GetLogger() Logger {
	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()

	return globalLogger
}

// SetLogger replaces the global logger.
func SetLogger(providedLogger Logger) error {
	if providedLogger == nil {
		return errors.New("cannot set nil logger")
	}
	// A Proxy delegates back to the global logger.
	if _, isProxy := providedLogger.(*Proxy); isProxy {
		return errors.New("cannot set Proxy as the global logger - it would create infinite recursion")
	}

	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()
	globalLogger = providedLogger
	return nil
}

// CreateDefaultLogger creates a new instance of the default slog-backed logger writing to stderr.
func CreateDefaultLogger() Logger {
	return newRawLogger(defaultOutput)
}
