package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "STASHCONF"

	cfgKeyStashMaster = "stashmaster"
	cfgKeyDataDir     = "data_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
)

// flagKeys binds persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"stashmaster": cfgKeyStashMaster,
	"log-level":   cfgKeyLogLevel,
}

// loadSettings reads config.yaml from configDir, applies STASHCONF_*
// environment overrides and flag overrides, and validates the result.
// A missing config directory or config.yaml is not an error.
func loadSettings(configDir string, root *cobra.Command) (types.Settings, error) {
	v := viper.New()
	defaults := types.DefaultSettings()
	v.SetDefault(cfgKeyStashMaster, defaults.StashMaster)
	v.SetDefault(cfgKeyDataDir, defaults.DataDir)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
	v.SetDefault(cfgKeyLogFormat, defaults.LogFormat)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if f := root.PersistentFlags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return types.Settings{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s types.Settings
	if err := v.Unmarshal(&s); err != nil {
		return types.Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return types.Settings{}, fmt.Errorf("%s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with s if the file does not
// exist. It reports whether a file was written.
func writeConfigIfMissing(path string, s types.Settings) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# stashconf configuration\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}
