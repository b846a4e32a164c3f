package tui

import (
	"time"

	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
)

// Board is the game.Sink the terminal front end reads from. It keeps the
// latest transient message until its display time runs out.
type Board struct {
	game.NopSink

	clock core.Clock
	text  string
	until time.Duration
	last  game.State
}

// NewBoard creates a board that expires messages against clock.
func NewBoard(clock core.Clock) *Board {
	return &Board{clock: clock}
}

// Message replaces the current message.
func (b *Board) Message(text string, d time.Duration) {
	b.text = text
	b.until = b.clock.Now() + d
}

// StateChanged records the latest snapshot.
func (b *Board) StateChanged(s game.State) {
	b.last = s
}

// Current returns the message still on display, or "".
func (b *Board) Current() string {
	if b.text == "" || b.clock.Now() >= b.until {
		return ""
	}
	return b.text
}

// Last returns the most recent state the session emitted.
func (b *Board) Last() game.State {
	return b.last
}
