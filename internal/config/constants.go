package config

import "time"

// Base application details
const AppName = "eddy"
const ConfigDirName = "eddy"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "eddy-pad.log"
const DefaultSessionDirName = "sessions" // Badger session store location

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// History defaults; MaxNodes mirrors the engine's own default ceiling.
const DefaultMaxNodes = 100
const SystemClipboard = true
