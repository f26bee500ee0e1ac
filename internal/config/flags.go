// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	MaxNodes        *int
	SessionDir      *string
	Ephemeral       *bool
	SystemClipboard *bool
}

// DefineFlags sets up the command-line flags and associates them with the
// Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file - Overrides config file")
	f.MaxNodes = flag.Int("max-nodes", 0, "History pruning ceiling - Overrides config file") // 0 indicates unset
	f.SessionDir = flag.String("session-dir", "", "Directory for the session store - Overrides config file")
	f.Ephemeral = flag.Bool("ephemeral", false, "Disable the on-disk session store")
	f.SystemClipboard = flag.Bool("system-clipboard", true, "Use the system clipboard when available")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they
// were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil && *f.LogFilePath != "" {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "max-nodes":
			if f.MaxNodes != nil && *f.MaxNodes > 0 {
				cfg.History.MaxNodes = *f.MaxNodes
			}
		case "session-dir":
			if f.SessionDir != nil && *f.SessionDir != "" {
				cfg.History.SessionDir = *f.SessionDir
			}
		case "ephemeral":
			if f.Ephemeral != nil {
				cfg.History.Ephemeral = *f.Ephemeral
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Pad.SystemClipboard = *f.SystemClipboard
			}
		}
	})
}
