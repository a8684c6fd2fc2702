package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Storage for log keys and hooks (single source of truth)
var (
	contextConfigMu sync.RWMutex
	logKeys         []interface{}
	contextHooks    map[string]ContextHook
)

// SetLogKeys sets the context keys to be extracted from context
// This function is thread-safe and can be called at runtime.
func SetLogKeys(keys []interface{}) {
	contextConfigMu.Lock()
	defer contextConfigMu.Unlock()

	logKeys = make([]interface{}, len(keys))
	copy(logKeys, keys)
}

// GetLogKeys returns a copy of the current log keys
func GetLogKeys() []interface{} {
	contextConfigMu.RLock()
	defer contextConfigMu.RUnlock()

	keysCopy := make([]interface{}, len(logKeys))
	copy(keysCopy, logKeys)
	return keysCopy
}

// RegisterContextHook registers a hook for extracting context fields
// This function is thread-safe and can be called at runtime.
func RegisterContextHook(key string, hook ContextHook) {
	contextConfigMu.Lock()
	defer contextConfigMu.Unlock()

	if contextHooks == nil {
		contextHooks = make(map[string]ContextHook)
	}
	contextHooks[key] = hook
}

// extractContextFields extracts log fields from context using the log keys and hooks
func extractContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	contextConfigMu.RLock()
	defer contextConfigMu.RUnlock()

	attrs := make([]slog.Attr, 0)
	for _, key := range logKeys {
		if val := ctx.Value(key); val != nil {
			attrs = append(attrs, slog.String(fmt.Sprint(key), fmt.Sprint(val)))
		}
	}
	for key, hook := range contextHooks {
		if val := hook(ctx); val != "" {
			attrs = append(attrs, slog.String(key, val))
		}
	}
	return attrs
}
