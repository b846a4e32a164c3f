package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimStep     time.Duration
	flagSimSave     bool
	flagSimManual   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run a headless auto-played session",
	Long: `Run a session on a simulated clock with auto-jump on, without a
terminal UI. Lost lives are continued automatically. The run ends at game
over or when --duration of simulated time has passed.

Examples:
  dinorun sim
  dinorun sim classic --seed 7
  dinorun sim arcade --duration 10m --difficulty hard
  dinorun sim practice --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 5*time.Minute, "Simulated time limit")
	simCmd.Flags().DurationVar(&flagSimStep, "step", 16*time.Millisecond, "Clock step between advances")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().BoolVar(&flagSimManual, "no-auto", false, "Leave auto-jump off (nobody jumps)")
}

// cueCounter tallies the cues a session emits.
type cueCounter struct {
	game.NopSink
	counts map[game.Cue]int
}

func (c *cueCounter) Cue(cue game.Cue) {
	c.counts[cue]++
}

// simResult summarizes a headless run.
type simResult struct {
	Final   game.State
	Elapsed time.Duration
	Cues    map[game.Cue]int
}

// simulate drives a session on a manual clock until it ends or limit passes.
func simulate(sess *game.Session, clock *core.ManualClock, step, limit time.Duration) time.Duration {
	sess.Handle(core.InputEvent{Action: core.ActionJump, At: clock.Now()})
	for clock.Now() < limit {
		now := clock.Advance(step)
		if sess.Phase() == game.PhaseLifeLost {
			sess.Handle(core.InputEvent{Action: core.ActionContinue, At: now})
		}
		sess.Advance(now)
		if sess.Phase() == game.PhaseOver {
			break
		}
	}
	return clock.Now()
}

func runSim(_ *cobra.Command, args []string) error {
	mode := game.DefaultMode
	if len(args) == 1 {
		mode = args[0]
	}
	if err := checkMode(mode); err != nil {
		return err
	}
	if flagSimStep <= 0 {
		return fmt.Errorf("--step must be positive")
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	logger := stderrLogger("dinorun-sim")

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSimSave {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	counter := &cueCounter{counts: make(map[game.Cue]int)}
	opts := game.Options{
		Seed:     seed,
		AutoPlay: !flagSimManual,
		Sink:     counter,
		Logger:   logger,
	}
	if store != nil {
		opts.Store = storage.NewHighScoreKeeper(store, mode)
	}
	sess, err := game.NewModeSession(mode, cfg, opts)
	if err != nil {
		return err
	}

	clock := &core.ManualClock{}
	elapsed := simulate(sess, clock, flagSimStep, flagSimDuration)
	res := simResult{Final: sess.State(), Elapsed: elapsed, Cues: counter.counts}
	printSimResult(mode, seed, res)

	if store != nil && res.Final.Score > 0 {
		run, err := store.SaveRun(storage.Run{
			Mode:       mode,
			Score:      res.Final.Score,
			Level:      res.Final.Level,
			AutoPlayed: !flagSimManual,
			Duration:   elapsed,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved run %s\n", run.RunID)
	}
	return nil
}

func printSimResult(mode string, seed int64, res simResult) {
	st := res.Final
	fmt.Printf("Simulation - %s (seed %d)\n", mode, seed)
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "Phase", st.Phase)
	fmt.Printf("  %-12s %s\n", "Time", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("  %-12s %d\n", "Score", st.Score)
	fmt.Printf("  %-12s %d (%s)\n", "Level", st.Level, st.Tier)
	fmt.Printf("  %-12s x%.2f\n", "Speed", st.GameSpeed)
	if st.Lives > 0 || st.Phase != game.PhaseOver {
		fmt.Printf("  %-12s %d\n", "Lives", st.Lives)
	}
	fmt.Printf("  %-12s %d\n", "High score", st.HighScore)
	fmt.Println()
	fmt.Printf("  %-12s %d single, %d double\n", "Jumps", res.Cues[game.CueJump], res.Cues[game.CueDoubleJump])
	fmt.Printf("  %-12s %d\n", "Lives lost", res.Cues[game.CueLifeLost])
	fmt.Printf("  %-12s %d\n", "Level ups", res.Cues[game.CueLevelUp])
}
