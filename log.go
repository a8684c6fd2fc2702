package gonativeblock

import (
	loggerinternal "github.com/nativeblock/gonativeblock/internal/logger"
	"github.com/nativeblock/gonativeblock/loginterface"
)

// QueryIDKey is the context key of the query id written to logs.
const QueryIDKey contextKey = "LOG_QUERY_ID"

type contextKey string

// logger is used by every component of the package. It always reaches the
// current global logger, so SetLogger takes effect immediately.
var logger = loggerinternal.NewProxy()

func init() {
	SetLogKeys(QueryIDKey)
	_ = logger.SetLogLevel("error")
}

type (
	// ContextHook is a client-defined hook that can be used to insert log
	// fields based on the Context.
	ContextHook = loginterface.ContextHook

	// LogEntry allows for logging using a snapshot of field values.
	LogEntry = loginterface.LogEntry

	// Logger abstracts away the underlying logging mechanism.
	Logger = loginterface.Logger
)

// GetLogger returns the logger used by the package.
func GetLogger() Logger {
	return logger
}

// SetLogger replaces the logger used by the package.
func SetLogger(l Logger) error {
	return loggerinternal.SetLogger(l)
}

// SetLogKeys sets the context keys to be written to logs when logger.WithContext is used.
func SetLogKeys(keys ...contextKey) {
	ikeys := make([]interface{}, len(keys))
	for i, k := range keys {
		ikeys[i] = k
	}
	loggerinternal.SetLogKeys(ikeys)
}

// RegisterLogContextHook registers a hook that can be used to extract fields
// from the Context and associated with log messages using the provided key.
func RegisterLogContextHook(key string, hook ContextHook) {
	loggerinternal.RegisterContextHook(key, hook)
}
