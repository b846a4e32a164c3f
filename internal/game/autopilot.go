package game

import (
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

// AutoPilot is the heuristic player used by auto-play mode. Each sim tick it
// looks at the nearest obstacle ahead and decides whether to press jump.
// Presses are delayed by a reaction time and returned as offsets so the
// session can queue them as deferred tasks.
type AutoPilot struct {
	cfg     config.AutoPlayConfig
	detect  CollisionDetector
	pending time.Duration // no new plan until this time
}

// NewAutoPilot creates an autopilot for the configured geometry.
func NewAutoPilot(cfg config.DinoConfig) *AutoPilot {
	return &AutoPilot{
		cfg:    cfg.AutoPlay,
		detect: NewCollisionDetector(cfg),
	}
}

// Reset forgets queued presses.
func (a *AutoPilot) Reset() {
	a.pending = 0
}

// Margins returns the single and double jump trigger distances for a level.
// Faster levels trigger earlier.
func (a *AutoPilot) Margins(level int) (single, double float64) {
	extra := a.cfg.MarginPerLevel * float64(level)
	return a.cfg.SingleMargin + extra, a.cfg.DoubleMargin + extra
}

// Plan returns the delays after now at which jump should be pressed.
func (a *AutoPilot) Plan(now time.Duration, level int, phase JumpPhase, obstacles []Obstacle) []time.Duration {
	if now < a.pending || phase == DoubleRising {
		return nil
	}

	target, dist, ok := a.nearest(obstacles)
	if !ok {
		return nil
	}

	single, double := a.Margins(level)
	reaction := a.cfg.ReactionDelay.D()

	var presses []time.Duration
	switch {
	case target.Kind.RequiresDoubleJump:
		if dist >= double {
			return nil
		}
		if phase == Grounded {
			presses = []time.Duration{reaction, reaction + a.cfg.DoubleGap.D()}
		} else {
			presses = []time.Duration{reaction}
		}
	case phase == Grounded && dist < single:
		presses = []time.Duration{reaction}
	default:
		return nil
	}

	a.pending = now + presses[len(presses)-1] + time.Nanosecond
	return presses
}

func (a *AutoPilot) nearest(obstacles []Obstacle) (Obstacle, float64, bool) {
	var (
		best  Obstacle
		dist  float64
		found bool
	)
	for _, o := range obstacles {
		d := a.detect.Distance(o)
		if d <= 0 {
			continue
		}
		if !found || d < dist {
			best, dist, found = o, d, true
		}
	}
	return best, dist, found
}
