package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

const scoreboardRuns = 100

// RunOrder selects which runs the scoreboard lists.
type RunOrder int

const (
	OrderBest RunOrder = iota
	OrderRecent
)

func (o RunOrder) String() string {
	if o == OrderRecent {
		return "recent"
	}
	return "best"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll   key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Order    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextMode, k.PrevMode, k.Order, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists stored runs per mode, best or most recent first.
type ScoreboardModel struct {
	store  *storage.Store
	modes  []registry.Mode
	cursor int
	order  RunOrder

	runs  []storage.Run
	stats *storage.ModeStats
	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = newRunTable(width, height)
	m.reload()
	return m
}

// newRunTable sizes the run table to the window. Spare width goes to the
// date column.
func newRunTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Auto", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := width - 4 - used; spare > 0 {
		columns[len(columns)-1].Width += min(spare, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
	)

	theme := CurrentTheme()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.MenuItemActive
	t.SetStyles(s)
	return t
}

// reload fetches runs and stats for the current mode and order.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	mode := m.CurrentMode()
	if m.store != nil && mode != "" {
		var err error
		if m.order == OrderRecent {
			m.runs, err = m.store.RecentRuns(mode, scoreboardRuns)
		} else {
			m.runs, err = m.store.TopRuns(mode, scoreboardRuns)
		}
		if err != nil {
			m.runs = nil
		}
		if stats, err := m.store.GetModeStats(mode); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		auto := ""
		if r.AutoPlayed {
			auto = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Level),
			auto,
			formatDuration(r.Duration.Seconds()),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles keys and resizes; other messages scroll the table.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newRunTable(m.width, m.height)
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders mode tabs, the stats line and the run table.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	theme := CurrentTheme()

	var b strings.Builder
	title := "HIGH SCORES"
	if m.order == OrderRecent {
		title = "RECENT RUNS"
	}
	b.WriteString(centerText(theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuDescription.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.runs) == 0 {
		body = theme.MenuDescription.Italic(true).Padding(1, 4).
			Render("No runs recorded yet.\nPlay a run to set a high score!")
	}
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(body))

	b.WriteString("\n")
	b.WriteString(theme.MenuHelp.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the mode names with the current one highlighted.
func (m ScoreboardModel) tabs() string {
	theme := CurrentTheme()
	parts := make([]string, len(m.modes))
	for i, md := range m.modes {
		if i == m.cursor {
			parts[i] = theme.MenuItemActive.Render("[" + md.Title + "]")
		} else {
			parts[i] = theme.MenuItemNormal.Render(" " + md.Title + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width && len(m.modes) > 0 {
		line = theme.MenuItemActive.Render(fmt.Sprintf("< %s >", m.modes[m.cursor].Title))
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.RunsCount == 0 {
		return "No runs yet"
	}
	return fmt.Sprintf("%d runs  |  best %d  |  best level %d  |  avg %.0f",
		m.stats.RunsCount, m.stats.BestScore, m.stats.BestLevel, m.stats.AvgScore)
}

// CurrentMode returns the ID of the mode on display, or "".
func (m ScoreboardModel) CurrentMode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.cursor].ID
}

// Order returns which runs are listed.
func (m ScoreboardModel) Order() RunOrder {
	return m.order
}

// Runs returns the runs on display.
func (m ScoreboardModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
