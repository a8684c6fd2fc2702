// Package nblog defines the log levels of the gonativeblock logger. Levels
// line up with log/slog, so a Level converts to slog.Level directly.
package nblog

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Level is a log level. It decodes from and encodes to its name, so it can
// be used directly in settings files.
type Level int

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
	// LevelOff disables logging.
	LevelOff = Level(math.MaxInt)
)

var levelNames = []struct {
	level Level
	name  string
}{
	{LevelTrace, "TRACE"},
	{LevelDebug, "DEBUG"},
	{LevelInfo, "INFO"},
	{LevelWarn, "WARN"},
	{LevelError, "ERROR"},
	{LevelOff, "OFF"},
}

// ParseLevel returns the level named level, ignoring case. Unknown names
// yield LevelInfo and an error.
func ParseLevel(level string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(level))
	for _, ln := range levelNames {
		if ln.name == name {
			return ln.level, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", level)
}

// LevelToString returns the name of level.
func LevelToString(level Level) (string, error) {
	for _, ln := range levelNames {
		if ln.level == level {
			return ln.name, nil
		}
	}
	return "", fmt.Errorf("unknown log level: %d", level)
}

// String returns the level name, or the slog rendering for levels in between.
func (l Level) String() string {
	if name, err := LevelToString(l); err == nil {
		return name
	}
	return slog.Level(l).String()
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	name, err := LevelToString(l)
	if err != nil {
		return nil, err
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}
