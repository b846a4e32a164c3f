package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-runner/internal/core"
)

// Theme contains the visual styles for the playfield and menus.
type Theme struct {
	// Playfield palette, indexed by core.Color
	Palette map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuHelp        lipgloss.Style
}

// Style returns the style for a palette color, falling back to the default.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.Palette[c]; ok {
		return s
	}
	return t.Palette[core.ColorDefault]
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:   lipgloss.NewStyle(),
			core.ColorGround:    lipgloss.NewStyle().Foreground(lipgloss.Color("137")), // Sand
			core.ColorPlayer:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Lime green
			core.ColorPlayerAir: lipgloss.NewStyle().Foreground(lipgloss.Color("118")),
			core.ColorCactus:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
			core.ColorRock:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			core.ColorRiver:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")), // Water blue
			core.ColorRival:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			core.ColorBanner:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			core.ColorWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuHelp:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with poor color support.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	gray := func(code string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	theme.Palette = map[core.Color]lipgloss.Style{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorGround:    gray("245"),
		core.ColorPlayer:    gray("255"),
		core.ColorPlayerAir: gray("255"),
		core.ColorCactus:    gray("250"),
		core.ColorRock:      gray("245"),
		core.ColorRiver:     gray("240"),
		core.ColorRival:     gray("250"),
		core.ColorHUD:       gray("255"),
		core.ColorBanner:    gray("255").Bold(true),
		core.ColorWarning:   gray("255").Bold(true),
		core.ColorMuted:     gray("240"),
	}
	theme.MenuTitle = gray("255").Bold(true)
	theme.MenuItemActive = gray("255").Bold(true)
	return theme
}

// ThemeByName returns a named theme. Unknown names return the default.
func ThemeByName(name string) Theme {
	switch name {
	case "mono", "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}

// Global theme variable (can be changed at startup)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return currentTheme
}
