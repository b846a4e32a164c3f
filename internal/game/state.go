package game

import "time"

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseLifeLost
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseLifeLost:
		return "life-lost"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of a session for presenters.
type State struct {
	Phase      Phase
	Score      int
	HighScore  int
	NewRecord  bool // score beat the stored high score when the game ended
	Lives      int  // 0 in single-life mode
	Level      int
	Tier       string
	GameSpeed  float64
	SpawnDelay time.Duration
	AutoPlay   bool
	Jump       JumpPhase
	Invincible bool
	Obstacles  int
	Generation uint64
	Mode       string
}
