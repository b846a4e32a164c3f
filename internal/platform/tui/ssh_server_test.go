package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
)

func newSessionModel(t *testing.T) SessionModel {
	t.Helper()
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
	return NewSessionModel(openMemStore(t), config.DefaultDinoConfig(), rt, log.New(io.Discard))
}

func stepSession(m SessionModel, msgs ...tea.Msg) SessionModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionModelMenuToGameAndBack(t *testing.T) {
	m := newSessionModel(t)

	m = stepSession(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenPreset || m.mode.ID != "classic" {
		t.Fatalf("after picking a mode: screen=%v mode=%q", m.screen, m.mode.ID)
	}

	m = stepSession(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("after picking a preset: screen=%v", m.screen)
	}
	// Classic keeps a single life even on easy
	if lives := m.game.Session().Config().Session.Lives; lives != 0 {
		t.Errorf("classic easy lives = %d, expected 0", lives)
	}

	m = stepSession(m, keyRune('w'))
	if m.game.Session().Phase() != game.PhaseRunning {
		t.Fatalf("game phase = %v, expected running", m.game.Session().Phase())
	}

	m = stepSession(m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.game != nil {
		t.Errorf("two escapes should return to the menu, screen=%v", m.screen)
	}
}

func TestSessionModelPresetBack(t *testing.T) {
	m := newSessionModel(t)
	m = stepSession(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("esc on the preset picker should return to the menu, screen=%v", m.screen)
	}
}

func TestSessionModelScoreboard(t *testing.T) {
	m := newSessionModel(t)

	m = stepSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("tab should open scores, screen=%v", m.screen)
	}
	if m.View() == "" {
		t.Error("scoreboard view should not be empty")
	}

	m = stepSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("esc should return to the menu, screen=%v", m.screen)
	}
}

func TestSessionModelQuit(t *testing.T) {
	m := newSessionModel(t)

	next, cmd := m.Update(keyRune('q'))
	if cmd == nil || !next.(SessionModel).quitting {
		t.Error("q in the menu should quit the session")
	}
}

func TestFilterQuit(t *testing.T) {
	if filterQuit(nil) != nil {
		t.Error("nil command should stay nil")
	}
	if msg := filterQuit(tea.Quit)(); msg != nil {
		t.Errorf("quit should be swallowed, got %T", msg)
	}
}
