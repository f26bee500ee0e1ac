// cmd/eddy-pad/main.go
package main

import (
	"fmt"
	stlog "log" // standard log for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/eddy"
	"github.com/bethropolis/eddy/event"
	"github.com/bethropolis/eddy/internal/config"
	"github.com/bethropolis/eddy/internal/logger"
	"github.com/bethropolis/eddy/internal/pad"
	"github.com/bethropolis/eddy/store"
)

const version = "0.1.0"

func main() {
	// --- Flag & Config Loading ---
	flags := &config.Flags{}
	flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
	}
	defer logFile.Close()
	logger.Init(logger.ParseLevel(cfg.Logger.LogLevel), logFile)

	logger.Infof("Starting eddy-pad...")
	logger.Debugf("Pruning ceiling: %d node(s)", cfg.History.MaxNodes)

	// --- Session Store ---
	var sessionStore store.Store = store.Nop{}
	var badgerStore *store.Badger
	if !cfg.History.Ephemeral && cfg.History.SessionDir != "" {
		badgerStore, err = store.OpenBadger(cfg.History.SessionDir)
		if err != nil {
			// The pad still works without persistence; degrade and carry on.
			logger.Warnf("Session store unavailable, running ephemeral: %v", err)
		} else {
			sessionStore = badgerStore
			defer badgerStore.Close()
			logger.Debugf("Session store: %s", cfg.History.SessionDir)
		}
	}

	// --- Engine & Host Wiring ---
	events := event.NewManager()
	engine := eddy.New(eddy.Config{
		MaxNodes: cfg.History.MaxNodes,
		// A stable id so the next run can read this run's structural record.
		SessionID: config.AppName + "-pad",
		Store:     sessionStore,
		Events:    events,
	})
	defer engine.Close()

	if rec, ok := engine.PriorSession(); ok {
		logger.Infof("Prior session %q left %d node(s) behind (not replayable)",
			rec.SessionID, len(rec.NodeIDs))
	}

	padApp, err := pad.New(pad.Options{
		Engine:          engine,
		Events:          events,
		SystemClipboard: cfg.Pad.SystemClipboard,
		StatusBarHeight: cfg.Pad.StatusBarHeight,
	})
	if err != nil {
		logger.Errorf("Error initializing pad: %v", err)
		os.Exit(1)
	}

	if err := padApp.Run(); err != nil {
		logger.Errorf("Pad exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("eddy-pad finished.")
}
