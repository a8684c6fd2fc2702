package nblog

import (
	"log/slog"
	"testing"
)

func TestParseLevelRoundTrip(t *testing.T) {
	for _, name := range []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"} {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", name, err)
		}
		back, err := LevelToString(level)
		if err != nil {
			t.Fatalf("LevelToString(%d) failed: %v", level, err)
		}
		if back != name {
			t.Errorf("expected %q, got %q", name, back)
		}
	}
}

func TestParseLevelCaseInsensitive(t *testing.T) {
	level, err := ParseLevel(" debug ")
	if err != nil {
		t.Fatal(err)
	}
	if level != LevelDebug {
		t.Errorf("expected debug level, got %d", level)
	}
}

func TestParseLevelUnknown(t *testing.T) {
	for _, name := range []string{"verbose", "FATAL", ""} {
		level, err := ParseLevel(name)
		if err == nil {
			t.Fatalf("expected error for %q", name)
		}
		if level != LevelInfo {
			t.Errorf("unknown level should fall back to info, got %d", level)
		}
	}
}

func TestLevelMatchesSlog(t *testing.T) {
	if slog.Level(LevelWarn) != slog.LevelWarn {
		t.Errorf("warn level differs from slog: %d", LevelWarn)
	}
	if slog.Level(LevelTrace) >= slog.LevelDebug {
		t.Errorf("trace must be below debug, got %d", LevelTrace)
	}
}

func TestLevelString(t *testing.T) {
	if s := LevelTrace.String(); s != "TRACE" {
		t.Errorf("expected TRACE, got %q", s)
	}
	if s := Level(1).String(); s != "INFO+1" {
		t.Errorf("expected slog rendering for in-between level, got %q", s)
	}
}

func TestLevelText(t *testing.T) {
	var level Level
	if err := level.UnmarshalText([]byte("warn")); err != nil {
		t.Fatal(err)
	}
	if level != LevelWarn {
		t.Errorf("expected warn level, got %d", level)
	}
	text, err := level.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "WARN" {
		t.Errorf("expected WARN, got %q", text)
	}

	if err = level.UnmarshalText([]byte("chatty")); err == nil {
		t.Error("expected error for unknown level")
	}
	if level != LevelWarn {
		t.Errorf("failed unmarshal must keep the previous level, got %d", level)
	}
	if _, err = Level(3).MarshalText(); err == nil {
		t.Error("expected error for unnamed level")
	}
}
