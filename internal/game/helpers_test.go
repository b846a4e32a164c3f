package game

import (
	"math"
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

const ms = time.Millisecond

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// quietConfig never spawns obstacles, so score and phase can be tested alone.
func quietConfig() config.DinoConfig {
	cfg := config.DefaultDinoConfig()
	cfg.Difficulty.BaseSpawnDelay = config.Duration(time.Hour)
	cfg.Difficulty.MinSpawnDelay = config.Duration(time.Hour)
	return cfg
}

func defaultKinds() []Kind {
	return KindsFromConfig(config.DefaultDinoConfig().Obstacles.Kinds)
}

func kindNamed(name string) Kind {
	for _, k := range defaultKinds() {
		if k.Name == name {
			return k
		}
	}
	panic("no kind " + name)
}

// obstacleAt places an obstacle so its left edge is at left.
func obstacleAt(kind Kind, left float64) Obstacle {
	return Obstacle{ID: 1, Kind: kind, Position: 800 - kind.Width - left}
}

// recorder captures every sink event.
type recorder struct {
	states   []State
	cues     []Cue
	messages []string
	created  []Obstacle
	removed  []int
}

func (r *recorder) StateChanged(s State)                 { r.states = append(r.states, s) }
func (r *recorder) ObstacleCreated(o Obstacle)           { r.created = append(r.created, o) }
func (r *recorder) ObstacleRemoved(id int)               { r.removed = append(r.removed, id) }
func (r *recorder) Message(text string, _ time.Duration) { r.messages = append(r.messages, text) }
func (r *recorder) Cue(c Cue)                            { r.cues = append(r.cues, c) }

func (r *recorder) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func (r *recorder) phases() []Phase {
	var out []Phase
	for _, s := range r.states {
		if len(out) == 0 || out[len(out)-1] != s.Phase {
			out = append(out, s.Phase)
		}
	}
	return out
}

// runUntil advances in 10ms steps until stop returns true or limit passes.
// It returns the time stop fired, or -1.
func runUntil(s *Session, from, limit time.Duration, stop func(State) bool) time.Duration {
	for t := from; t <= limit; t += 10 * ms {
		s.Advance(t)
		if stop(s.State()) {
			return t
		}
	}
	return -1
}
