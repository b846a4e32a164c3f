package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"

	// Registers the game modes
	_ "github.com/vovakirdan/dino-runner/internal/game"
)

// loadGameConfig loads the tuning file and applies --difficulty.
func loadGameConfig() (config.DinoConfig, error) {
	cfg, err := config.LoadDino(flagConfig)
	if err != nil {
		return config.DinoConfig{}, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(strings.ToLower(flagDifficulty))
		if !ok {
			return config.DinoConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// checkMode reports an unknown mode with a hint.
func checkMode(id string) error {
	if registry.Exists(id) {
		return nil
	}
	return fmt.Errorf("unknown mode %q, run 'dinorun modes' to see available modes", id)
}

// stderrLogger logs for headless commands.
func stderrLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(parseLevel())
	return logger
}

// fileLogger logs to ~/.dinorun/dinorun.log while the TUI owns the terminal.
// The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return stderrLogger("dinorun"), func() {}
	}
	path := filepath.Join(home, ".dinorun", "dinorun.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return stderrLogger("dinorun"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return stderrLogger("dinorun"), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dinorun",
	})
	logger.SetLevel(parseLevel())
	return logger, func() { f.Close() }
}

func parseLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// openStore opens the scores database. Failure is logged and play goes on
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
