package gonativeblock

import (
	"os"
	path "path/filepath"
	"time"

	toml "github.com/BurntSushi/toml"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/nativeblock/gonativeblock/nblog"
)

const (
	homeEnvName          = "GONATIVEBLOCK_HOME"
	defaultHomeDirName   = ".gonativeblock"
	defaultSettingsFile  = "settings.toml"
	useClientTimeZoneKey = "use_client_time_zone"
)

// Settings are the client settings that influence decoding.
type Settings struct {
	// UseClientTimeZone leaves DateTime values without an explicit timezone as
	// naive UTC instead of shifting them to the server timezone.
	UseClientTimeZone bool `toml:"use_client_time_zone"`
}

// ServerInfo carries what the server reported about itself during the handshake.
type ServerInfo struct {
	Timezone string `toml:"timezone"`
}

// Context is handed to the column factory for every block column.
type Context struct {
	Settings   Settings
	ServerInfo ServerInfo
	// Allocator backs every decoded arrow array. Defaults to memory.DefaultAllocator.
	Allocator memory.Allocator
}

// NewContext returns a Context for a server running in serverTimezone.
func NewContext(serverTimezone string, settings Settings) *Context {
	return &Context{
		Settings:   settings,
		ServerInfo: ServerInfo{Timezone: serverTimezone},
		Allocator:  memory.DefaultAllocator,
	}
}

func (c *Context) allocator() memory.Allocator {
	if c == nil || c.Allocator == nil {
		return memory.DefaultAllocator
	}
	return c.Allocator
}

// settingsFile is the on-disk layout of settings.toml.
type settingsFile struct {
	LogLevel   *nblog.Level `toml:"log_level"`
	Settings   Settings     `toml:"settings"`
	ServerInfo ServerInfo   `toml:"server_info"`
}

// LoadContext reads a Context from a TOML settings file. When the file sets
// log_level, the package logger is switched to it.
func LoadContext(filePath string) (*Context, error) {
	var file settingsFile
	meta, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		return nil, &WireError{
			Number:      ErrCodeInvalidSettings,
			Message:     errMsgInvalidSettings,
			MessageArgs: []interface{}{filePath},
			cause:       err,
		}
	}
	for _, key := range meta.Undecoded() {
		logger.Warnf("ignoring unknown setting %v in %v", key.String(), filePath)
	}
	if file.ServerInfo.Timezone != "" {
		if _, err = time.LoadLocation(file.ServerInfo.Timezone); err != nil {
			return nil, &WireError{
				Number:      ErrCodeUnknownTimezone,
				Message:     errMsgUnknownTimezone,
				MessageArgs: []interface{}{file.ServerInfo.Timezone},
				cause:       err,
			}
		}
	}
	if file.LogLevel != nil {
		if err = logger.SetLogLevelInt(*file.LogLevel); err != nil {
			return nil, &WireError{
				Number:      ErrCodeInvalidSettings,
				Message:     errMsgInvalidSettings,
				MessageArgs: []interface{}{filePath},
				cause:       err,
			}
		}
	}
	logger.Debugf("loaded settings from %v: %v=%v, server timezone %q",
		filePath, useClientTimeZoneKey, file.Settings.UseClientTimeZone, file.ServerInfo.Timezone)
	return &Context{
		Settings:   file.Settings,
		ServerInfo: file.ServerInfo,
		Allocator:  memory.DefaultAllocator,
	}, nil
}

// LoadDefaultContext loads settings.toml from GONATIVEBLOCK_HOME, or from
// ~/.gonativeblock when the variable is not set.
func LoadDefaultContext() (*Context, error) {
	dir, err := getSettingsDir(os.Getenv(homeEnvName))
	if err != nil {
		return nil, err
	}
	return LoadContext(path.Join(dir, defaultSettingsFile))
}

func getSettingsDir(dir string) (string, error) {
	if len(dir) != 0 {
		if path.IsAbs(dir) {
			return dir, nil
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = path.Join(homeDir, defaultHomeDirName)
	}
	return path.Abs(dir)
}
