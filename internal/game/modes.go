package game

import (
	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
)

// DefaultMode is used when no mode is named.
const DefaultMode = "arcade"

func init() {
	registry.Register(registry.Mode{
		ID:          "arcade",
		Title:       "Arcade",
		Description: "Three lives, brief invincibility after each hit",
	})
	registry.Register(registry.Mode{
		ID:          "classic",
		Title:       "Classic",
		Description: "One life, any collision ends the run",
		Configure: func(cfg *config.DinoConfig) {
			cfg.Session.Lives = 0
		},
	})
	registry.Register(registry.Mode{
		ID:          "practice",
		Title:       "Practice",
		Description: "Auto-jump starts enabled; toggle it off to take over",
		AutoPlay:    true,
	})
}

// NewModeSession creates a session for a registered mode, applying its
// tuning adjustments to cfg.
func NewModeSession(modeID string, cfg config.DinoConfig, opts Options) (*Session, error) {
	if modeID == "" {
		modeID = DefaultMode
	}
	m, err := registry.Get(modeID)
	if err != nil {
		return nil, err
	}
	opts.Config = m.Apply(cfg)
	opts.Mode = m.ID
	opts.AutoPlay = opts.AutoPlay || m.AutoPlay
	return NewSession(opts)
}
