package sound

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dino-runner/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)

	// DefaultVolume is the master gain applied to every cue.
	DefaultVolume = 0.6
)

// Player turns session cues into sounds. It is a game.Sink and can be
// added next to the renderer. Until Initialize succeeds every cue is
// dropped, so a machine without an audio device still plays silently.
type Player struct {
	game.NopSink

	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	played      int
	logger      *log.Logger
}

// NewPlayer creates a player at DefaultVolume.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
		logger: logger,
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending cues and stops the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// SetMuted toggles output without closing the device.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// SetVolume sets the master gain, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = min(max(v, 0), 1)
	p.mu.Unlock()
}

// Played reports how many cues reached the mixer.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Cue plays the sound for c.
func (p *Player) Cue(c game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	s := CueSound(c, sampleRate, p.volume)
	if s == nil {
		p.logger.Debug("no sound for cue", "cue", c)
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played++
}
