package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/nativeblock/gonativeblock/nblog"
)

// Frames between the public logging call and runtime.Callers when the logger is
// reached through the package Proxy: Proxy method -> rawLogger method -> logWithSkip.
const (
	loggerCallerSkip = 2
	entryCallerSkip  = 1
)

// formatSource formats caller information for logging
func formatSource(frame *runtime.Frame) (string, string) {
	return path.Base(frame.Function), fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
}

// rawLogger implements Logger using slog
type rawLogger struct {
	inner    *slog.Logger
	handler  *blockHandler
	levelVar *slog.LevelVar
	output   io.Writer
	mu       sync.Mutex
}

var _ Logger = (*rawLogger)(nil)

// newRawLogger creates the internal default logger using slog
func newRawLogger(output io.Writer) *rawLogger {
	levelVar := &slog.LevelVar{}
	levelVar.Set(slog.Level(nblog.LevelInfo))

	handler := newBlockHandler(slog.NewTextHandler(output, createOpts(levelVar)), levelVar)
	return &rawLogger{
		inner:    slog.New(handler),
		handler:  handler,
		levelVar: levelVar,
		output:   output,
	}
}

// SetLogLevel sets the log level
func (log *rawLogger) SetLogLevel(level string) error {
	parsed, err := nblog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return fmt.Errorf("error while setting log level. %v", err)
	}
	log.levelVar.Set(slog.Level(parsed))
	return nil
}

func (log *rawLogger) SetLogLevelInt(level nblog.Level) error {
	if _, err := nblog.LevelToString(level); err != nil {
		return fmt.Errorf("invalid log level: %d", level)
	}
	log.levelVar.Set(slog.Level(level))
	return nil
}

// GetLogLevel returns the current log level
func (log *rawLogger) GetLogLevel() string {
	if levelStr, err := nblog.LevelToString(log.GetLogLevelInt()); err == nil {
		return levelStr
	}
	return "unknown"
}

func (log *rawLogger) GetLogLevelInt() nblog.Level {
	return nblog.Level(log.levelVar.Level())
}

// SetOutput sets the output writer
func (log *rawLogger) SetOutput(output io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.output = output
	log.handler = newBlockHandler(slog.NewTextHandler(output, createOpts(log.levelVar)), log.levelVar)
	log.inner = slog.New(log.handler)
}

// SetHandler replaces the underlying slog handler. Level gating is preserved.
func (log *rawLogger) SetHandler(handler slog.Handler) error {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.handler = newBlockHandler(handler, log.levelVar)
	log.inner = slog.New(log.handler)
	return nil
}

func createOpts(level slog.Leveler) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format(time.RFC3339Nano))
				}
			}
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, nblog.Level(l).String())
				}
			}
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					frame := &runtime.Frame{
						File:     src.File,
						Line:     src.Line,
						Function: src.Function,
					}
					_, location := formatSource(frame)
					return slog.String(slog.SourceKey, location)
				}
			}
			return a
		},
	}
}

func (log *rawLogger) current() (*slog.Logger, *blockHandler) {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.inner, log.handler
}

// logWithSkip logs a message at the given level, skipping 'skip' frames when determining source location.
func (log *rawLogger) logWithSkip(skip int, level nblog.Level, msg string) {
	_, handler := log.current()
	if !handler.Enabled(context.Background(), slog.Level(level)) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip+2, pcs[:])
	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	_ = handler.Handle(context.Background(), r)
}

func (log *rawLogger) Tracef(format string, args ...interface{}) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelTrace, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Debugf(format string, args ...interface{}) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelDebug, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Infof(format string, args ...interface{}) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelInfo, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Warnf(format string, args ...interface{}) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelWarn, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Errorf(format string, args ...interface{}) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelError, fmt.Sprintf(format, args...))
}

func (log *rawLogger) Trace(msg string) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelTrace, msg)
}

func (log *rawLogger) Debug(msg string) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelDebug, msg)
}

func (log *rawLogger) Info(msg string) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelInfo, msg)
}

func (log *rawLogger) Warn(msg string) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelWarn, msg)
}

func (log *rawLogger) Error(msg string) {
	log.logWithSkip(loggerCallerSkip, nblog.LevelError, msg)
}

// Structured logging methods
func (log *rawLogger) WithField(key string, value interface{}) LogEntry {
	inner, _ := log.current()
	return &slogEntry{logger: inner.With(slog.Any(key, value))}
}

func (log *rawLogger) WithFields(fields map[string]any) LogEntry {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	inner, _ := log.current()
	return &slogEntry{logger: inner.With(attrs...)}
}

func (log *rawLogger) WithContext(ctx context.Context) LogEntry {
	if ctx == nil {
		return log
	}
	attrs := extractContextFields(ctx)
	if len(attrs) == 0 {
		return log
	}
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	inner, _ := log.current()
	return &slogEntry{logger: inner.With(args...)}
}

// slogEntry implements LogEntry
type slogEntry struct {
	logger *slog.Logger
}

var _ LogEntry = (*slogEntry)(nil)

func (e *slogEntry) logWithSkip(skip int, level nblog.Level, msg string) {
	if !e.logger.Handler().Enabled(context.Background(), slog.Level(level)) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip+2, pcs[:])
	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	_ = e.logger.Handler().Handle(context.Background(), r)
}

func (e *slogEntry) Tracef(format string, args ...interface{}) {
	e.logWithSkip(entryCallerSkip, nblog.LevelTrace, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Debugf(format string, args ...interface{}) {
	e.logWithSkip(entryCallerSkip, nblog.LevelDebug, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Infof(format string, args ...interface{}) {
	e.logWithSkip(entryCallerSkip, nblog.LevelInfo, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Warnf(format string, args ...interface{}) {
	e.logWithSkip(entryCallerSkip, nblog.LevelWarn, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Errorf(format string, args ...interface{}) {
	e.logWithSkip(entryCallerSkip, nblog.LevelError, fmt.Sprintf(format, args...))
}

func (e *slogEntry) Trace(msg string) {
	e.logWithSkip(entryCallerSkip, nblog.LevelTrace, msg)
}

func (e *slogEntry) Debug(msg string) {
	e.logWithSkip(entryCallerSkip, nblog.LevelDebug, msg)
}

func (e *slogEntry) Info(msg string) {
	e.logWithSkip(entryCallerSkip, nblog.LevelInfo, msg)
}

func (e *slogEntry) Warn(msg string) {
	e.logWithSkip(entryCallerSkip, nblog.LevelWarn, msg)
}

func (e *slogEntry) Error(msg string) {
	e.logWithSkip(entryCallerSkip, nblog.LevelError, msg)
}

// defaultOutput is where a freshly created logger writes.
var defaultOutput io.Writer = os.Stderr
