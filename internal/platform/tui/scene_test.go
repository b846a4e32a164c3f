package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
)

var river = game.Kind{Name: "river", Class: game.ClassWide, Width: 120, Height: 30, RequiresDoubleJump: true}

func runningFrame() Frame {
	field := config.DefaultDinoConfig().Field
	return Frame{
		State: game.State{
			Phase:     game.PhaseRunning,
			Score:     120,
			HighScore: 300,
			Level:     2,
			Tier:      "Normal",
			Lives:     2,
			GameSpeed: 1.24,
		},
		Player:   core.NewRect(80, field.Ground, 60, 70),
		Field:    field,
		MaxLives: 3,
	}
}

func TestDrawFrameGroundedPlayer(t *testing.T) {
	s := core.NewScreen(80, 23)
	DrawFrame(s, runningFrame())

	if got := s.GetCell(0, 22); got.Rune != GroundChar || got.Color != core.ColorGround {
		t.Errorf("ground cell = %+v", got)
	}
	if got := s.GetCell(8, 21); got.Rune != PlayerChar || got.Color != core.ColorPlayer {
		t.Errorf("player foot cell = %+v", got)
	}
	if got := s.Get(13, 17); got != PlayerHead {
		t.Errorf("player head = %q, expected %q", got, PlayerHead)
	}
	if got := s.Get(8, 16); got != ' ' {
		t.Errorf("cell above player = %q, expected blank", got)
	}
}

func TestDrawFrameAirbornePlayer(t *testing.T) {
	f := runningFrame()
	f.State.Jump = game.DoubleRising
	f.Player = core.NewRect(80, 195, 60, 70)

	s := core.NewScreen(80, 23)
	DrawFrame(s, f)

	if got := s.GetCell(8, 8); got.Rune != PlayerChar || got.Color != core.ColorPlayerAir {
		t.Errorf("airborne player cell = %+v", got)
	}
	if got := s.Get(8, 21); got != ' ' {
		t.Errorf("ground row under a jumping player = %q, expected blank", got)
	}
}

func TestDrawFrameInvinciblePlayer(t *testing.T) {
	f := runningFrame()
	f.State.Invincible = true

	s := core.NewScreen(80, 23)
	DrawFrame(s, f)

	if got := s.Get(8, 21); got != GhostChar {
		t.Errorf("invincible player cell = %q, expected %q", got, GhostChar)
	}
}

func TestDrawFrameObstacles(t *testing.T) {
	f := runningFrame()
	// Left edge at x=400 on an 800 wide field
	f.Obstacles = []game.Obstacle{
		{ID: 1, Kind: river, Position: 800 - 400 - river.Width},
		{ID: 2, Kind: game.Kind{Name: "cactus", Width: 25, Height: 60}, Position: -25},
	}

	s := core.NewScreen(80, 23)
	DrawFrame(s, f)

	if got := s.GetCell(40, 21); got.Rune != RiverChar || got.Color != core.ColorRiver {
		t.Errorf("river cell = %+v", got)
	}
	if got := s.Get(51, 20); got != RiverChar {
		t.Errorf("river right edge = %q", got)
	}
	if got := s.Get(40, 19); got != ' ' {
		t.Errorf("cell above river = %q, expected blank", got)
	}
}

func TestDrawFrameHUD(t *testing.T) {
	f := runningFrame()
	f.State.AutoPlay = true

	s := core.NewScreen(80, 23)
	DrawFrame(s, f)

	hud := s.Row(0)
	for _, want := range []string{"Score 120", "Hi 300", "Lv 2 Normal", "♥♥♡", "AUTO", "x1.24"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
}

func TestDrawFrameSingleLifeHidesHearts(t *testing.T) {
	f := runningFrame()
	f.MaxLives = 0
	f.State.Lives = 0

	s := core.NewScreen(80, 23)
	DrawFrame(s, f)

	if strings.ContainsAny(s.Row(0), "♥♡") {
		t.Errorf("single-life HUD shows hearts: %q", s.Row(0))
	}
}

func TestDrawFrameBanner(t *testing.T) {
	f := runningFrame()
	f.Message = "Level 2! Normal"

	s := core.NewScreen(80, 23)
	DrawFrame(s, f)

	row := s.Row(bannerRow)
	if !strings.Contains(row, "Level 2! Normal") {
		t.Errorf("banner row = %q", row)
	}
	if got := s.GetCell(strings.Index(row, "L"), bannerRow).Color; got != core.ColorBanner {
		t.Errorf("banner color = %v", got)
	}
}

func TestDrawFrameOverlays(t *testing.T) {
	tests := []struct {
		name   string
		phase  game.Phase
		record bool
		tip    string
		want   []string
	}{
		{"not started", game.PhaseNotStarted, false, "", []string{"DINO RUNNER", "Space to start"}},
		{"paused", game.PhasePaused, false, "", []string{"PAUSED"}},
		{"life lost", game.PhaseLifeLost, false, "", []string{"OUCH!", "2 lives left"}},
		{"game over", game.PhaseOver, false, "Watch the rivers", []string{"GAME OVER", "Score: 120", "Watch the rivers"}},
		{"new record", game.PhaseOver, true, "", []string{"NEW RECORD!"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := runningFrame()
			f.State.Phase = tc.phase
			f.State.NewRecord = tc.record
			f.Tip = tc.tip

			s := core.NewScreen(80, 23)
			DrawFrame(s, f)

			out := s.String()
			for _, want := range tc.want {
				if !strings.Contains(out, want) {
					t.Errorf("screen missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestDrawFrameLongTipTruncated(t *testing.T) {
	f := runningFrame()
	f.State.Phase = game.PhaseOver
	f.Tip = strings.Repeat("long tip ", 10)

	s := core.NewScreen(40, 23)
	DrawFrame(s, f)

	if !strings.Contains(s.String(), "…") {
		t.Error("long tip should be truncated with an ellipsis")
	}
}

func TestDrawFrameTinyScreen(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {10, 3}, {5, 6}} {
		s := core.NewScreen(size[0], size[1])
		DrawFrame(s, runningFrame()) // must not panic
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawText(0, 0, "DINO", core.ColorBanner)
	s.DrawText(0, 1, "RUN", core.ColorPlayer)

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rendered %d line breaks, expected 1", got)
	}
	if !strings.Contains(out, "DINO") || !strings.Contains(out, "RUN") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestThemeByName(t *testing.T) {
	mono := ThemeByName("mono")
	if len(mono.Palette) != len(DefaultTheme().Palette) {
		t.Error("monochrome theme should cover the whole palette")
	}
	// Unknown colors fall back to the default style
	_ = ThemeByName("nope").Style(core.Color(200))
}
