package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the runner.
const (
	ColorDefault Color = iota
	ColorGround
	ColorPlayer
	ColorPlayerAir
	ColorCactus
	ColorRock
	ColorRiver
	ColorRival
	ColorHUD
	ColorBanner
	ColorWarning
	ColorMuted
)

// String returns the palette name, used in screenshots and debug output.
func (c Color) String() string {
	switch c {
	case ColorGround:
		return "ground"
	case ColorPlayer:
		return "player"
	case ColorPlayerAir:
		return "player-air"
	case ColorCactus:
		return "cactus"
	case ColorRock:
		return "rock"
	case ColorRiver:
		return "river"
	case ColorRival:
		return "rival"
	case ColorHUD:
		return "hud"
	case ColorBanner:
		return "banner"
	case ColorWarning:
		return "warning"
	case ColorMuted:
		return "muted"
	default:
		return "default"
	}
}
