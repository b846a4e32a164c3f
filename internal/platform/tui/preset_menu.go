package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// presetOption is one row of the difficulty picker.
type presetOption struct {
	preset config.DifficultyPreset
	title  string
	desc   string
}

var presetOptions = []presetOption{
	{config.DifficultyEasy, "Easy", "Five lives and slower spawns"},
	{config.DifficultyNormal, "Normal", "The tuning as configured"},
	{config.DifficultyHard, "Hard", "Two lives and a steeper speed curve"},
}

// PresetModel lets users choose a difficulty preset before a run.
type PresetModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewPresetModel creates a preset picker headed by the mode title.
// The cursor starts on Normal.
func NewPresetModel(title string, width, height int) PresetModel {
	return PresetModel{
		title:     title,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m PresetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PresetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m PresetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(presetOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = presetOptions[m.cursor].preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the preset selection.
func (m PresetModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	theme := CurrentTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range presetOptions {
		cursor, style := "  ", theme.MenuItemNormal
		if i == m.cursor {
			cursor, style = "> ", theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(fmt.Sprintf("%s%-8s", cursor, opt.title)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuDescription.Render(presetOptions[m.cursor].desc), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuHelp.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if still choosing.
func (m PresetModel) Selected() *config.DifficultyPreset {
	if m.choosing {
		return nil
	}
	p := m.selection
	return &p
}

// IsQuitting returns true if user wants to quit.
func (m PresetModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PresetModel) WantsBack() bool {
	return m.back
}

// RunPresetSelector runs the difficulty picker. A nil preset means the
// player backed out; quit reports that they asked to leave entirely.
func RunPresetSelector(title string, cfg core.RuntimeConfig) (preset *config.DifficultyPreset, quit bool, err error) {
	p := tea.NewProgram(
		NewPresetModel(title, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(PresetModel)
	if !ok || m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}
	return m.Selected(), false, nil
}
