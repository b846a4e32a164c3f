package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type testRig struct {
	model Model
	clock *core.ManualClock
	store *storage.Store
}

func newTestRig(t *testing.T, mode string) *testRig {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &core.ManualClock{}
	m, err := NewModel(GameOptions{
		Mode:          mode,
		Config:        config.DefaultDinoConfig(),
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Store:         store,
		Clock:         clock,
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	return &testRig{model: m, clock: clock, store: store}
}

func (r *testRig) send(msg tea.Msg) tea.Cmd {
	next, cmd := r.model.Update(msg)
	r.model = next.(Model)
	return cmd
}

func (r *testRig) phase() game.Phase {
	return r.model.Session().Phase()
}

// tickUntil advances the clock in 20ms ticks until the phase matches.
func (r *testRig) tickUntil(t *testing.T, want game.Phase, limit time.Duration) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < limit; elapsed += 20 * time.Millisecond {
		r.clock.Advance(20 * time.Millisecond)
		r.send(TickMsg(time.Now()))
		if r.phase() == want {
			return
		}
	}
	t.Fatalf("phase %v not reached within %v, still %v", want, limit, r.phase())
}

// playUntilOver ticks without jumping, continuing after every lost life.
func (r *testRig) playUntilOver(t *testing.T, limit time.Duration) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < limit; elapsed += 20 * time.Millisecond {
		r.clock.Advance(20 * time.Millisecond)
		r.send(TickMsg(time.Now()))
		switch r.phase() {
		case game.PhaseOver:
			return
		case game.PhaseLifeLost:
			r.send(tea.KeyMsg{Type: tea.KeyEnter})
		}
	}
	t.Fatalf("game not over within %v, phase %v", limit, r.phase())
}

func TestModelJumpStartsRun(t *testing.T) {
	r := newTestRig(t, "classic")
	if r.phase() != game.PhaseNotStarted {
		t.Fatalf("initial phase = %v", r.phase())
	}

	r.send(keyRune('w'))
	if r.phase() != game.PhaseRunning {
		t.Errorf("phase after jump key = %v, expected running", r.phase())
	}
}

func TestModelPauseToggles(t *testing.T) {
	r := newTestRig(t, "classic")
	r.send(keyRune('w'))

	r.send(keyRune('p'))
	if r.phase() != game.PhasePaused {
		t.Fatalf("phase after p = %v, expected paused", r.phase())
	}
	r.send(keyRune('p'))
	if r.phase() != game.PhaseRunning {
		t.Errorf("phase after second p = %v, expected running", r.phase())
	}
}

func TestModelBackPausesThenLeaves(t *testing.T) {
	r := newTestRig(t, "classic")
	r.send(keyRune('w'))

	if cmd := r.send(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("back while running should not return a command")
	}
	if r.phase() != game.PhasePaused || r.model.BackToMenu() {
		t.Fatalf("first back: phase=%v back=%v", r.phase(), r.model.BackToMenu())
	}

	r.send(tea.KeyMsg{Type: tea.KeyEsc})
	if !r.model.BackToMenu() {
		t.Error("second back should request the menu")
	}
}

func TestModelQuit(t *testing.T) {
	r := newTestRig(t, "classic")

	cmd := r.send(keyRune('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if !r.model.IsQuitting() || r.model.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	r := newTestRig(t, "classic")
	r.send(keyRune('w'))
	r.tickUntil(t, game.PhaseOver, 60*time.Second)

	// Keep ticking after game over; the run must not be saved twice
	for range 10 {
		r.clock.Advance(20 * time.Millisecond)
		r.send(TickMsg(time.Now()))
	}

	runs, err := r.store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}

	st := r.model.Session().State()
	if runs[0].Score != st.Score || runs[0].Level != st.Level || runs[0].AutoPlayed {
		t.Errorf("saved run %+v does not match state %+v", runs[0], st)
	}
	if runs[0].Duration <= 0 {
		t.Errorf("run duration = %v, expected positive", runs[0].Duration)
	}

	high, err := r.store.HighScore(storage.HighScoreKey("classic"))
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if high != st.Score {
		t.Errorf("stored high score = %d, expected %d", high, st.Score)
	}
}

func TestModelRestartSavesAgain(t *testing.T) {
	r := newTestRig(t, "classic")
	r.send(keyRune('w'))
	r.tickUntil(t, game.PhaseOver, 60*time.Second)

	r.send(keyRune('r'))
	if r.phase() != game.PhaseRunning {
		t.Fatalf("phase after restart = %v", r.phase())
	}
	r.tickUntil(t, game.PhaseOver, 60*time.Second)

	runs, err := r.store.RecentRuns("classic", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("saved %d runs after restart, expected 2", len(runs))
	}
}

func TestModelAutoPlayMarksRun(t *testing.T) {
	r := newTestRig(t, "practice")
	if !r.model.Session().State().AutoPlay {
		t.Fatal("practice mode should start with auto-play")
	}
	r.send(keyRune('w'))
	r.send(keyRune('a')) // hand control back so the run ends
	r.playUntilOver(t, 120*time.Second)

	runs, err := r.store.TopRuns("practice", 10)
	if err != nil {
		t.Fatalf("TopRuns() error: %v", err)
	}
	if len(runs) != 1 || !runs[0].AutoPlayed {
		t.Errorf("runs = %+v, expected one auto-played run", runs)
	}
}

func TestModelScreenshot(t *testing.T) {
	r := newTestRig(t, "classic")

	r.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	path := r.model.LastScreenshot()
	if path == "" {
		t.Fatal("no screenshot recorded")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading screenshot: %v", err)
	}
	if !strings.Contains(string(data), "DINO RUNNER") {
		t.Errorf("screenshot missing title:\n%s", data)
	}
}

func TestModelViewAndResize(t *testing.T) {
	r := newTestRig(t, "arcade")

	if !strings.Contains(r.model.View(), "DINO RUNNER") {
		t.Error("view should show the start panel")
	}

	r.send(tea.WindowSizeMsg{Width: 60, Height: 20})
	view := r.model.View()
	if lines := strings.Count(view, "\n") + 1; lines != 20 {
		t.Errorf("view has %d lines after resize, expected 20", lines)
	}
}

func TestNewModelUnknownMode(t *testing.T) {
	_, err := NewModel(GameOptions{Mode: "nope", Config: config.DefaultDinoConfig()})
	if err == nil {
		t.Error("unknown mode should fail")
	}
}
