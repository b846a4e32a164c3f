package game

import (
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

// JumpPhase is the vertical state of the player.
type JumpPhase int

const (
	Grounded JumpPhase = iota
	Rising
	DoubleRising
)

func (p JumpPhase) String() string {
	switch p {
	case Grounded:
		return "grounded"
	case Rising:
		return "rising"
	case DoubleRising:
		return "double-rising"
	default:
		return "unknown"
	}
}

// JumpResult reports what a jump request did.
type JumpResult int

const (
	JumpIgnored JumpResult = iota
	JumpStarted
	JumpDoubled
)

// JumpController is the time-based jump state machine.
// Phases expire on timeouts measured against the clock passed to each call,
// so the controller never owns a timer.
type JumpController struct {
	cfg config.JumpConfig

	phase     JumpPhase
	startedAt time.Duration // first press of the current jump
	endsAt    time.Duration

	lastDouble time.Duration
	hasDoubled bool
}

// NewJumpController creates a grounded controller.
func NewJumpController(cfg config.JumpConfig) *JumpController {
	return &JumpController{cfg: cfg}
}

// Request handles a jump press at now.
// Grounded starts a jump. Rising within the double window upgrades to a
// double jump and replaces the pending single timeout. Anything else is
// ignored.
func (j *JumpController) Request(now time.Duration) JumpResult {
	j.Update(now)

	switch j.phase {
	case Grounded:
		j.phase = Rising
		j.startedAt = now
		j.endsAt = now + j.cfg.RiseDuration.D()
		return JumpStarted

	case Rising:
		window := j.cfg.DoubleWindow.D()
		if window > 0 && now-j.startedAt > window {
			return JumpIgnored
		}
		j.phase = DoubleRising
		j.endsAt = now + j.cfg.DoubleRiseDuration.D()
		j.lastDouble = now
		j.hasDoubled = true
		return JumpDoubled
	}

	return JumpIgnored
}

// Update lands the player when the current phase has timed out.
// It returns true on the call that lands.
func (j *JumpController) Update(now time.Duration) bool {
	if j.phase == Grounded || now < j.endsAt {
		return false
	}
	j.phase = Grounded
	return true
}

// Phase returns the current phase without advancing time.
func (j *JumpController) Phase() JumpPhase {
	return j.phase
}

// Bottom returns the player's bottom edge for the current phase.
func (j *JumpController) Bottom(ground float64) float64 {
	switch j.phase {
	case Rising:
		return j.cfg.SingleHeight
	case DoubleRising:
		return j.cfg.DoubleHeight
	default:
		return ground
	}
}

// LastDoubleJump returns when the most recent double jump started.
func (j *JumpController) LastDoubleJump() (time.Duration, bool) {
	return j.lastDouble, j.hasDoubled
}

// Shift moves the running phase's timeouts d later, so time spent paused
// does not count against the jump.
func (j *JumpController) Shift(d time.Duration) {
	if j.phase == Grounded || d <= 0 {
		return
	}
	j.startedAt += d
	j.endsAt += d
}

// Reset grounds the player and forgets jump history.
func (j *JumpController) Reset() {
	*j = JumpController{cfg: j.cfg}
}
