// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/eddy/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  LoggerConfig  `toml:"logger"`  // [logger] table
	History HistoryConfig `toml:"history"` // [history] table
	Pad     PadConfig     `toml:"pad"`     // [pad] table
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	LogLevel    string `toml:"log_level"` // debug, info, warn, error
	LogFilePath string `toml:"log_file"`  // empty means DefaultLogFileName
}

// HistoryConfig holds undo-engine settings.
type HistoryConfig struct {
	MaxNodes   int    `toml:"max_nodes"`   // pruning ceiling
	SessionDir string `toml:"session_dir"` // badger session store directory
	Ephemeral  bool   `toml:"ephemeral"`   // skip the on-disk session store
}

// PadConfig holds scratch-pad host settings.
type PadConfig struct {
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	sessionDir := ""
	if configDir, err := os.UserConfigDir(); err == nil {
		sessionDir = filepath.Join(configDir, ConfigDirName, DefaultSessionDirName)
	}
	return &Config{
		Logger: LoggerConfig{
			LogLevel:    "info",
			LogFilePath: "",
		},
		History: HistoryConfig{
			MaxNodes:   DefaultMaxNodes,
			SessionDir: sessionDir,
		},
		Pad: PadConfig{
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file. A missing
// file is not an error.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// merge copies the set fields of file over the defaults in c.
func (c *Config) merge(file *Config) {
	if file.Logger.LogLevel != "" {
		c.Logger.LogLevel = file.Logger.LogLevel
	}
	if file.Logger.LogFilePath != "" {
		c.Logger.LogFilePath = file.Logger.LogFilePath
	}
	if file.History.MaxNodes > 0 {
		c.History.MaxNodes = file.History.MaxNodes
	}
	if file.History.SessionDir != "" {
		c.History.SessionDir = file.History.SessionDir
	}
	if file.History.Ephemeral {
		c.History.Ephemeral = true
	}
	if file.Pad.StatusBarHeight > 0 {
		c.Pad.StatusBarHeight = file.Pad.StatusBarHeight
	}
	c.Pad.SystemClipboard = file.Pad.SystemClipboard
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.History.MaxNodes <= 0 {
		c.History.MaxNodes = defaults.History.MaxNodes
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Pad.StatusBarHeight <= 0 {
		c.Pad.StatusBarHeight = defaults.Pad.StatusBarHeight
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		// Determine effective config file path
		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				cfg.merge(fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}
		cfg.validate()
		loadedConfig = cfg
	})
	return loadedConfig, loadErr
}

// Get returns the loaded config, or defaults if LoadConfig was never called.
func Get() *Config {
	if loadedConfig == nil {
		return NewDefaultConfig()
	}
	return loadedConfig
}
