package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
)

// Visual characters for rendering
const (
	GroundChar = '═'
	PlayerChar = '█'
	PlayerHead = '◆'
	GhostChar  = '▒' // player while invincible
	CactusChar = '▓'
	RockChar   = '▆'
	RiverChar  = '≈'
	RivalChar  = '▙'
)

const (
	hudRow         = 0
	bannerRow      = 1
	playfieldTop   = 2
	minSceneHeight = 6
)

// Frame is everything needed to draw one picture of a session.
type Frame struct {
	State     game.State
	Obstacles []game.Obstacle
	Player    core.Rect
	Field     config.FieldConfig
	MaxLives  int    // configured lives, 0 in single-life mode
	Message   string // transient banner, empty when none
	Tip       string
}

// FrameOf captures the session's current picture.
func FrameOf(s *game.Session, message string) Frame {
	cfg := s.Config()
	return Frame{
		State:     s.State(),
		Obstacles: s.Obstacles(),
		Player:    s.PlayerBox(),
		Field:     cfg.Field,
		MaxLives:  cfg.Session.Lives,
		Message:   message,
		Tip:       s.Tip(),
	}
}

// projection maps world coordinates (y up from the ground line) onto
// screen cells (y down from the HUD).
type projection struct {
	ground int // screen row of the ground line
	sx, sy float64
	field  config.FieldConfig
}

func newProjection(w, h int, field config.FieldConfig) projection {
	p := projection{ground: h - 1, field: field}
	if field.Width > 0 {
		p.sx = float64(w) / field.Width
	}
	rows := p.ground - playfieldTop
	if span := field.Height - field.Ground; rows > 0 && span > 0 {
		p.sy = float64(rows) / span
	}
	return p
}

func (p projection) col(x float64) int {
	return int(math.Floor(x * p.sx))
}

// row returns the screen row holding world height y.
func (p projection) row(y float64) int {
	return p.ground - 1 - int(math.Floor((y-p.field.Ground)*p.sy))
}

// cells returns the screen rectangle covered by a world box.
// Every visible box covers at least one cell.
func (p projection) cells(r core.Rect) (x, y, w, h int) {
	x = p.col(r.X)
	w = max(p.col(r.Right())-x, 1)
	h = max(int(math.Round(r.H*p.sy)), 1)
	bottom := p.row(r.Y)
	return x, bottom - h + 1, w, h
}

// fill paints a cell rectangle, clipped to the playfield rows.
func (p projection) fill(dst *core.Screen, x, y, w, h int, r rune, c core.Color) {
	top := max(y, playfieldTop)
	bottom := min(y+h, p.ground)
	if bottom <= top {
		return
	}
	dst.FillRect(x, top, w, bottom-top, r, c)
}

// DrawFrame renders a frame onto dst, replacing its contents.
func DrawFrame(dst *core.Screen, f Frame) {
	dst.Clear()
	drawHUD(dst, f)
	if dst.Height() < minSceneHeight {
		return
	}

	p := newProjection(dst.Width(), dst.Height(), f.Field)
	dst.DrawHLine(0, p.ground, dst.Width(), GroundChar, core.ColorGround)

	for _, o := range f.Obstacles {
		drawObstacle(dst, p, o)
	}
	drawPlayer(dst, p, f)

	if f.Message != "" {
		dst.DrawTextCentered(bannerRow, f.Message, core.ColorBanner)
	}

	switch f.State.Phase {
	case game.PhaseNotStarted:
		drawPanel(dst, core.ColorBanner,
			"DINO RUNNER",
			"Space to start",
			"Tap twice quickly to clear rivers",
		)
	case game.PhasePaused:
		drawPanel(dst, core.ColorBanner, "PAUSED", "P or Space to resume")
	case game.PhaseLifeLost:
		drawPanel(dst, core.ColorWarning,
			"OUCH!",
			livesLeft(f.State.Lives),
			"Enter or Space to continue",
		)
	case game.PhaseOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", f.State.Score)}
		if f.State.NewRecord {
			lines = append(lines, "NEW RECORD!")
		}
		if f.Tip != "" {
			lines = append(lines, f.Tip)
		}
		lines = append(lines, "R to restart  |  Esc for menu")
		drawPanel(dst, core.ColorWarning, lines...)
	}
}

func livesLeft(n int) string {
	if n == 1 {
		return "1 life left"
	}
	return fmt.Sprintf("%d lives left", n)
}

// drawHUD renders score and status on the top row.
func drawHUD(dst *core.Screen, f Frame) {
	st := f.State
	tier := st.Tier
	if tier == "" {
		tier = "Normal"
	}
	left := fmt.Sprintf(" Score %d  Hi %d  Lv %d %s ", st.Score, st.HighScore, max(st.Level, 1), tier)
	dst.DrawText(0, hudRow, left, core.ColorHUD)

	var right strings.Builder
	if f.MaxLives > 0 {
		right.WriteString(strings.Repeat("♥", st.Lives))
		right.WriteString(strings.Repeat("♡", max(f.MaxLives-st.Lives, 0)))
		right.WriteString("  ")
	}
	if st.AutoPlay {
		right.WriteString("AUTO  ")
	}
	fmt.Fprintf(&right, "x%.2f ", st.GameSpeed)

	text := right.String()
	x := dst.Width() - len([]rune(text))
	if x > len([]rune(left)) {
		dst.DrawText(x, hudRow, text, core.ColorHUD)
	}
}

func drawObstacle(dst *core.Screen, p projection, o game.Obstacle) {
	x, y, w, h := p.cells(o.Hitbox(p.field.Width, p.field.Ground))

	r, c := CactusChar, core.ColorCactus
	switch {
	case o.Kind.RequiresDoubleJump:
		r, c = RiverChar, core.ColorRiver
	case o.Kind.Class == game.ClassMedium:
		r, c = RockChar, core.ColorRock
	case o.Kind.Class == game.ClassTall:
		r, c = RivalChar, core.ColorRival
	}
	p.fill(dst, x, y, w, h, r, c)
}

func drawPlayer(dst *core.Screen, p projection, f Frame) {
	x, y, w, h := p.cells(f.Player)

	r, c := PlayerChar, core.ColorPlayer
	if f.State.Jump != game.Grounded {
		c = core.ColorPlayerAir
	}
	if f.State.Invincible {
		r = GhostChar
	}
	p.fill(dst, x, y, w, h, r, c)
	if y >= playfieldTop {
		dst.SetColored(x+w-1, y, PlayerHead, c)
	}
}

// drawPanel draws a boxed message in the center of the screen.
// The first line is the title.
func drawPanel(dst *core.Screen, titleColor core.Color, lines ...string) {
	w, h := dst.Width(), dst.Height()
	maxText := max(w-4, 1)

	boxW := 0
	for i, l := range lines {
		lines[i] = truncate(l, maxText)
		boxW = max(boxW, len([]rune(lines[i]))+4)
	}
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorHUD)

	for i, l := range lines {
		c := core.ColorHUD
		if i == 0 {
			c = titleColor
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i, l, c)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
