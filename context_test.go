package gonativeblock

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	file := filepath.Join(dir, "settings.toml")
	assertNilF(t, os.WriteFile(file, []byte(content), 0600))
	return file
}

func resetLogLevel(t *testing.T) {
	level := GetLogger().GetLogLevel()
	t.Cleanup(func() {
		_ = GetLogger().SetLogLevel(level)
	})
}

func TestLoadContext(t *testing.T) {
	resetLogLevel(t)
	file := writeSettings(t, t.TempDir(), `
log_level = "debug"
unknown_key = 1

[settings]
use_client_time_zone = true

[server_info]
timezone = "Europe/Berlin"
`)
	ctx, err := LoadContext(file)
	assertNilF(t, err)
	assertTrueE(t, ctx.Settings.UseClientTimeZone)
	assertEqualE(t, ctx.ServerInfo.Timezone, "Europe/Berlin")
	assertNotNilF(t, ctx.Allocator)
	assertEqualE(t, GetLogger().GetLogLevel(), "DEBUG")
}

func TestLoadContextErrors(t *testing.T) {
	dir := t.TempDir()
	testcases := []struct {
		name    string
		content string
		err     error
	}{
		{"malformed", "log_level = ", ErrInvalidSettings},
		{"wrong type", "[settings]\nuse_client_time_zone = \"yes\"\n", ErrInvalidSettings},
		{"unknown timezone", "[server_info]\ntimezone = \"Nowhere/Land\"\n", ErrUnknownTimezone},
		{"unknown log level", "log_level = \"chatty\"\n", ErrInvalidSettings},
		{"log level not a string", "log_level = 3\n", ErrInvalidSettings},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			resetLogLevel(t)
			_, err := LoadContext(writeSettings(t, dir, tc.content))
			assertErrIsE(t, err, tc.err)
		})
	}

	_, err := LoadContext(filepath.Join(dir, "missing.toml"))
	assertErrIsE(t, err, ErrInvalidSettings)
}

func TestLoadDefaultContext(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "[server_info]\ntimezone = \"UTC\"\n")
	t.Setenv(homeEnvName, dir)
	ctx, err := LoadDefaultContext()
	assertNilF(t, err)
	assertEqualE(t, ctx.ServerInfo.Timezone, "UTC")
	assertFalseE(t, ctx.Settings.UseClientTimeZone)
}

func TestGetSettingsDir(t *testing.T) {
	dir, err := getSettingsDir("/etc/nativeblock")
	assertNilF(t, err)
	assertEqualE(t, dir, "/etc/nativeblock")

	dir, err = getSettingsDir("relative")
	assertNilF(t, err)
	assertTrueE(t, filepath.IsAbs(dir))

	t.Setenv("HOME", "/home/someone")
	dir, err = getSettingsDir("")
	assertNilF(t, err)
	assertEqualE(t, dir, filepath.Join("/home/someone", defaultHomeDirName))
}

func TestNewContext(t *testing.T) {
	ctx := NewContext("Asia/Tokyo", Settings{UseClientTimeZone: true})
	assertEqualE(t, ctx.ServerInfo.Timezone, "Asia/Tokyo")
	assertTrueE(t, ctx.Settings.UseClientTimeZone)
	assertNotNilF(t, ctx.allocator())

	var nilCtx *Context
	assertNotNilF(t, nilCtx.allocator())
}
