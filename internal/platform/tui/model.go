package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

// GameOptions configures one playable session in the terminal.
type GameOptions struct {
	Mode     string
	Config   config.DinoConfig
	Runtime  core.RuntimeConfig
	AutoPlay bool
	Store    *storage.Store // nil keeps scores in memory only
	Logger   *log.Logger
	Sinks    []game.Sink // extra effect sinks, such as sound
	Clock    core.Clock  // nil uses the wall clock

	// ScreenshotDir receives ctrl+s captures. Empty uses ~/.dinorun/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	session *game.Session
	board   *Board
	clock   core.Clock
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	shotDir string

	runStart   time.Duration
	autoUsed   bool
	scoreSaved bool // Whether the run has been saved for the current game over
	lastShot   string
	quitting   bool
	backToMenu bool
	exitOnBack bool // standalone programs quit instead of returning to a parent model
}

// NewModel creates the game model and its session.
func NewModel(opts GameOptions) (Model, error) {
	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	mode := opts.Mode
	if mode == "" {
		mode = game.DefaultMode
	}

	clock := opts.Clock
	if clock == nil {
		clock = core.NewSystemClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	board := NewBoard(clock)
	sinks := append(game.Sinks{board}, opts.Sinks...)

	sessOpts := game.Options{
		Seed:     rt.Seed,
		AutoPlay: opts.AutoPlay,
		Sink:     sinks,
		Logger:   logger,
	}
	if opts.Store != nil {
		sessOpts.Store = storage.NewHighScoreKeeper(opts.Store, mode)
	}
	session, err := game.NewModeSession(mode, opts.Config, sessOpts)
	if err != nil {
		return Model{}, fmt.Errorf("tui: cannot create session: %w", err)
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(os.Getenv("HOME"), ".dinorun", "screenshots")
	}

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		session: session,
		board:   board,
		clock:   clock,
		screen:  core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 0)),
		store:   opts.Store,
		logger:  logger,
		config:  rt,
		keys:    DefaultKeyMap(),
		help:    h,
		shotDir: shotDir,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.advance()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock.Now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		// A running game pauses first; the menu is one more press away
		if m.session.Phase() == game.PhaseRunning {
			m.session.Handle(core.InputEvent{Action: core.ActionPause, At: now})
			return m, nil
		}
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}
	if action == core.ActionPause && m.session.Phase() == game.PhasePaused {
		action = core.ActionResume
	}

	before := m.session.Phase()
	m.session.Handle(core.InputEvent{Action: action, At: now})
	if action == core.ActionRestart || (before == game.PhaseNotStarted && m.session.Phase() == game.PhaseRunning) {
		m.runStart = now
		m.autoUsed = false
		m.scoreSaved = false
	}
	m.advance()

	return m, nil
}

// advance moves the session to the wall clock and records a finished run once.
func (m *Model) advance() {
	m.session.Advance(m.clock.Now())

	st := m.session.State()
	if st.AutoPlay && st.Phase != game.PhaseNotStarted {
		m.autoUsed = true
	}
	if st.Phase == game.PhaseOver && !m.scoreSaved {
		m.saveRun(st)
		m.scoreSaved = true
	}
}

func (m *Model) saveRun(st game.State) {
	if m.store == nil || st.Score == 0 {
		return
	}
	run, err := m.store.SaveRun(storage.Run{
		Mode:       st.Mode,
		Score:      st.Score,
		Level:      st.Level,
		AutoPlayed: m.autoUsed,
		Duration:   m.session.Now() - m.runStart,
	})
	if err != nil {
		m.logger.Error("could not save run", "err", err, "score", st.Score)
		return
	}
	m.logger.Info("run saved", "run", run.RunID, "mode", run.Mode, "score", run.Score)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.frame())

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(m.shotDir, fmt.Sprintf("dino_%s.txt", strings.ReplaceAll(timestamp, ".", "_")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.lastShot = path
	m.board.Message("Screenshot saved", 2*time.Second)
}

func (m Model) frame() Frame {
	return FrameOf(m.session, m.board.Current())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.frame())
	return RenderScreen(m.screen) + "\n" + CurrentTheme().MenuHelp.Render(m.help.View(m.keys))
}

// Session exposes the running session.
func (m Model) Session() *game.Session {
	return m.session
}

// LastScreenshot returns the path of the latest screenshot, or "".
func (m Model) LastScreenshot() string {
	return m.lastShot
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one session.
// It returns true when the player asked to go back to the menu.
func Run(opts GameOptions) (backToMenu bool, err error) {
	model, err := NewModel(opts)
	if err != nil {
		return false, err
	}
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
