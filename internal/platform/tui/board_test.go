package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
)

func TestBoardMessageExpires(t *testing.T) {
	clock := &core.ManualClock{}
	b := NewBoard(clock)

	if got := b.Current(); got != "" {
		t.Errorf("fresh board message = %q", got)
	}

	b.Message("Ready? Go!", 2*time.Second)
	clock.Advance(1999 * time.Millisecond)
	if got := b.Current(); got != "Ready? Go!" {
		t.Errorf("message before expiry = %q", got)
	}

	clock.Advance(time.Millisecond)
	if got := b.Current(); got != "" {
		t.Errorf("message after expiry = %q", got)
	}
}

func TestBoardNewerMessageWins(t *testing.T) {
	clock := &core.ManualClock{}
	b := NewBoard(clock)

	b.Message("Game Paused", 2*time.Second)
	clock.Advance(500 * time.Millisecond)
	b.Message("Get Ready!", time.Second)

	if got := b.Current(); got != "Get Ready!" {
		t.Errorf("Current() = %q", got)
	}
	clock.Advance(time.Second)
	if got := b.Current(); got != "" {
		t.Errorf("replaced message should expire on its own duration, got %q", got)
	}
}

func TestBoardTracksState(t *testing.T) {
	b := NewBoard(&core.ManualClock{})
	b.StateChanged(game.State{Phase: game.PhaseRunning, Score: 7})
	if got := b.Last(); got.Score != 7 || got.Phase != game.PhaseRunning {
		t.Errorf("Last() = %+v", got)
	}
}
