package game

import "time"

// Cue is a discrete audiovisual event a presenter may react to.
type Cue int

const (
	CueJump Cue = iota
	CueDoubleJump
	CueLevelUp
	CueLifeLost
	CueGameOver
	CueHighScore
	CuePause
	CueResume
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueDoubleJump:
		return "double-jump"
	case CueLevelUp:
		return "level-up"
	case CueLifeLost:
		return "life-lost"
	case CueGameOver:
		return "game-over"
	case CueHighScore:
		return "high-score"
	case CuePause:
		return "pause"
	case CueResume:
		return "resume"
	default:
		return "unknown"
	}
}

// Sink receives the session's render effects. Calls happen synchronously on
// the goroutine driving the session and must not call back into it.
type Sink interface {
	StateChanged(s State)
	ObstacleCreated(o Obstacle)
	ObstacleRemoved(id int)
	Message(text string, d time.Duration)
	Cue(c Cue)
}

// NopSink ignores every event. Embed it to implement part of Sink.
type NopSink struct{}

func (NopSink) StateChanged(State)            {}
func (NopSink) ObstacleCreated(Obstacle)      {}
func (NopSink) ObstacleRemoved(int)           {}
func (NopSink) Message(string, time.Duration) {}
func (NopSink) Cue(Cue)                       {}

// Sinks fans every event out to each sink in order.
type Sinks []Sink

func (s Sinks) StateChanged(st State) {
	for _, k := range s {
		k.StateChanged(st)
	}
}

func (s Sinks) ObstacleCreated(o Obstacle) {
	for _, k := range s {
		k.ObstacleCreated(o)
	}
}

func (s Sinks) ObstacleRemoved(id int) {
	for _, k := range s {
		k.ObstacleRemoved(id)
	}
}

func (s Sinks) Message(text string, d time.Duration) {
	for _, k := range s {
		k.Message(text, d)
	}
}

func (s Sinks) Cue(c Cue) {
	for _, k := range s {
		k.Cue(c)
	}
}
