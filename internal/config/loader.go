package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDino loads the runner configuration.
// Search order: customPath -> ~/.dinorun/configs/dino.yaml -> ./configs/dino.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error; the other
// locations are optional and skipped silently. Whatever source wins is
// validated before it is returned.
func LoadDino(customPath string) (DinoConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("dino.yaml"), filepath.Join("configs", "dino.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDinoYAML)
	if err != nil {
		return DefaultDinoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hard-coded defaults and validates the result,
// so a partial file only overrides the keys it names. Lists such as kinds and
// tiers are replaced wholesale when present.
func Parse(data []byte) (DinoConfig, error) {
	cfg := DefaultDinoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DinoConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DinoConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dinorun", "configs", filename)
}
