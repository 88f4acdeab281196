package types

import "errors"

// Settings holds the values read from config.yaml, the environment and
// flags. Field tags match the config.yaml keys.
type Settings struct {
	StashMaster string `mapstructure:"stashmaster" yaml:"stashmaster,omitempty"`
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat   string `mapstructure:"log_format" yaml:"log_format"`
}

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Settings validation errors.
var (
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var knownLogFormats = map[string]bool{
	LogFormatText: true,
	LogFormatJSON: true,
}

// DefaultSettings returns the settings used when config.yaml is empty.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "warn",
		LogFormat: LogFormatText,
	}
}

// Validate checks that the settings are well-formed. Empty level and
// format fall back to defaults and are accepted.
func (s Settings) Validate() error {
	if s.LogLevel != "" && !knownLogLevels[s.LogLevel] {
		return ErrLogLevelUnknown
	}
	if s.LogFormat != "" && !knownLogFormats[s.LogFormat] {
		return ErrLogFormatUnknown
	}
	return nil
}
