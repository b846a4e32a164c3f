package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
)

var (
	flagConfigDefault bool
	flagConfigMode    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning as YAML",
	Long: `Print the tuning a game would start with: the file found by the
config search order (or --config), with --difficulty and --mode applied.
Redirect it to ~/.dinorun/configs/dino.yaml to start customizing.

Examples:
  dinorun config > ~/.dinorun/configs/dino.yaml
  dinorun config --difficulty hard --mode classic
  dinorun config --default`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the embedded default file verbatim")
	configCmd.Flags().StringVar(&flagConfigMode, "mode", "", "Apply a mode's adjustments")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefault {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if flagConfigMode != "" {
		m, err := registry.Get(flagConfigMode)
		if err != nil {
			return checkMode(flagConfigMode)
		}
		cfg = m.Apply(cfg)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
