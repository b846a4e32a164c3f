// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the platform
// to discover them without hardcoded lists.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/dino-runner/internal/config"
)

// ErrUnknownMode is returned when a mode ID is not registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Mode is a named variant of the runner built on the same simulation.
type Mode struct {
	// ID is a unique identifier (e.g., "arcade", "classic").
	// Used for CLI commands and score storage keys.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description is a one-line summary shown in mode lists.
	Description string

	// AutoPlay starts the session with the autopilot enabled.
	AutoPlay bool

	// Configure adjusts the loaded tuning for this mode. May be nil.
	Configure func(cfg *config.DinoConfig)
}

// Apply returns a copy of cfg with the mode's adjustments.
func (m Mode) Apply(cfg config.DinoConfig) config.DinoConfig {
	if m.Configure != nil {
		m.Configure(&cfg)
	}
	return cfg
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if m.ID == "" {
		panic("registry: mode ID is required")
	}
	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	if m.Title == "" {
		m.Title = m.ID
	}
	modes[m.ID] = m
}

// List returns all registered modes, sorted by ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the mode registered under id.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
