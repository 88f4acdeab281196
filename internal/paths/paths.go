// Package paths resolves the stashconf configuration and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names. A project that has run `stashconf init`
// keeps its settings next to its rose-app.conf files.
const (
	DefaultConfigDirName = ".stashconf"
	DefaultDataDirName   = ".stashconf-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STASHCONF_CONFIG_DIR"
	EnvDataDir   = "STASHCONF_DATA_DIR"
)

// appDir is the per-user subdirectory under the platform locations.
const appDir = "stashconf"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/stashconf (fallback ~/.config/stashconf)
// Others:  os.UserConfigDir()/stashconf
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/stashconf (fallback ~/.local/share/stashconf)
// Others:  os.UserConfigDir()/stashconf
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformPath(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appDir), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, homeRel, appDir), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > STASHCONF_CONFIG_DIR > $(CWD)/.stashconf when it
// exists > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > settingsValue (data_dir in config.yaml) > STASHCONF_DATA_DIR >
// $(CWD)/.stashconf-db.
func ResolveDataDir(flag, settingsValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if settingsValue != "" {
		return filepath.Abs(settingsValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
