package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
	"github.com/vovakirdan/dino-runner/internal/platform/sound"
	"github.com/vovakirdan/dino-runner/internal/platform/tui"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

var (
	flagAuto  bool
	flagMute  bool
	flagTheme string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. Without a mode the menu opens so you can pick one,
then a difficulty.

Controls:
  Space/Up   - Jump (press again mid-air to double jump), start, continue
  P          - Pause / resume
  A          - Toggle auto-jump
  R          - Restart
  Enter      - Continue after losing a life
  Ctrl+S     - Save a text screenshot
  Esc        - Pause, then back to the menu
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Five lives and slower spawns
  normal - The tuning as configured
  hard   - Two lives and a steeper speed curve

Examples:
  dinorun play
  dinorun play classic
  dinorun play arcade --difficulty hard
  dinorun play practice --mute
  dinorun play --config ./my-dino.yaml --theme mono`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAuto, "auto", false, "Start with auto-jump enabled")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, mono")
}

// player bundles what every game launched from this command shares.
type player struct {
	store  *storage.Store
	logger *log.Logger
	sound  *sound.Player
	base   config.DinoConfig
	rt     core.RuntimeConfig
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := checkMode(args[0]); err != nil {
			return err
		}
	}

	base, err := loadGameConfig()
	if err != nil {
		return err
	}
	tui.SetTheme(tui.ThemeByName(flagTheme))

	logger, closeLog := fileLogger()
	defer closeLog()

	// Get terminal size early for the menus
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	p := &player{
		logger: logger,
		base:   base,
		rt: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	}

	p.store = openStore(logger)
	if p.store != nil {
		defer p.store.Close()
	}

	if !flagMute {
		p.sound = sound.NewPlayer(logger.WithPrefix("sound"))
		if err := p.sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		}
		defer p.sound.Close()
	}

	if len(args) == 1 {
		back, err := p.play(args[0], base)
		if err != nil || !back {
			return err
		}
	}
	return p.menuLoop()
}

// play runs one mode until the player quits or asks for the menu.
func (p *player) play(mode string, cfg config.DinoConfig) (backToMenu bool, err error) {
	opts := tui.GameOptions{
		Mode:     mode,
		Config:   cfg,
		Runtime:  p.rt,
		AutoPlay: flagAuto,
		Store:    p.store,
		Logger:   p.logger,
	}
	if p.sound != nil {
		opts.Sinks = []game.Sink{p.sound}
	}

	p.logger.Info("starting game", "mode", mode, "seed", p.rt.Seed)
	back, err := tui.Run(opts)
	if err != nil {
		return false, fmt.Errorf("running game: %w", err)
	}
	return back, nil
}

// menuLoop shows the mode menu, then the preset picker, then the game,
// and comes back to the menu until the player quits.
func (p *player) menuLoop() error {
	for {
		result, err := tui.RunMenu(p.store, p.rt)
		if err != nil {
			return err
		}

		// Keep any size changes
		p.rt = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(p.store, p.rt.ScreenW, p.rt.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		cfg := p.base
		// --difficulty was already applied; only ask when it was not given
		if flagDifficulty == "" {
			mode, _ := registry.Get(result.ModeID)
			preset, quit, err := tui.RunPresetSelector(mode.Title, p.rt)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if preset == nil {
				continue
			}
			config.ApplyPreset(&cfg, *preset)
		}

		back, err := p.play(result.ModeID, cfg)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}
