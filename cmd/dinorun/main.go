// dinorun is a side-scrolling runner for the terminal: jump over cacti,
// rocks and rivals, double-jump the rivers, and chase a high score.
//
// Usage:
//
//	dinorun play [mode]      - Play a mode, or pick one from the menu
//	dinorun sim [mode]       - Run a headless auto-played session
//	dinorun scores [mode]    - Show the best runs
//	dinorun modes            - List available modes
//	dinorun config           - Print the effective tuning as YAML
//	dinorun serve            - Start SSH server for remote play
//	dinorun web              - Start the HTTP API and demo stream
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.dinorun/scores.db)
//	--config <path>        - Use a custom dino.yaml
//	--difficulty <preset>  - easy, normal or hard
//	--log-level <level>    - debug, info, warn or error
//
// DINORUN_DB, DINORUN_CONFIG and DINORUN_LOG_LEVEL, read from the
// environment or a local .env file, change the flag defaults.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinorun",
	Short: "Dino Runner - an endless runner in your terminal",
	Long: `Dino Runner is a terminal endless runner. Jump over obstacles, double-jump
the rivers, and survive as the game speeds up.

Available commands:
  play     - Play a mode (menu when no mode is given)
  sim      - Headless auto-played run
  scores   - View the best runs
  modes    - Show all modes
  config   - Print the effective tuning
  serve    - Start SSH server for remote play
  web      - Start the HTTP API and websocket demo

Examples:
  dinorun play
  dinorun play classic --difficulty hard
  dinorun sim arcade --duration 2m --seed 7
  dinorun serve --ssh :2222
  dinorun scores arcade`,
	SilenceUsage: true,
}

func init() {
	// A missing .env is fine; real environment variables win over it
	_ = godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("DINORUN_DB", "~/.dinorun/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envOr("DINORUN_CONFIG", ""), "Path to custom dino.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envOr("DINORUN_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
