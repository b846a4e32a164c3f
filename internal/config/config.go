// Package config provides YAML-based tuning tables for the runner: playfield
// geometry, obstacle kinds, the difficulty curve, spawner heuristics, jump
// timing and session timing.
package config

import "time"

// DinoConfig contains all tuning for the runner.
type DinoConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Jump       JumpConfig       `yaml:"jump"`
	Collision  CollisionConfig  `yaml:"collision"`
	Session    SessionConfig    `yaml:"session"`
	AutoPlay   AutoPlayConfig   `yaml:"autoplay"`
	Tips       []string         `yaml:"tips"`
}

// FieldConfig defines the playfield in world units (pixels of the original board).
type FieldConfig struct {
	Width         float64 `yaml:"width"`          // Distance from spawn edge to the far edge
	Height        float64 `yaml:"height"`         // Visible height, used only for rendering
	Ground        float64 `yaml:"ground"`         // Height of the ground line
	DespawnMargin float64 `yaml:"despawn_margin"` // Obstacles past width+margin are removed
}

// PlayerConfig defines the player's fixed horizontal hitbox and its height.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines the obstacle kinds and their movement scale.
type ObstacleConfig struct {
	SpeedScale float64      `yaml:"speed_scale"` // speed = difficulty * gameSpeed * scale, per sim tick
	Kinds      []KindConfig `yaml:"kinds"`
}

// KindConfig describes one obstacle kind.
type KindConfig struct {
	Name               string  `yaml:"name"`
	Class              string  `yaml:"class"` // low, medium, wide, tall
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Weight             int     `yaml:"weight"`     // Higher weight = more common
	Difficulty         float64 `yaml:"difficulty"` // Base speed factor
	RequiresDoubleJump bool    `yaml:"requires_double_jump"`
	ClearHeight        float64 `yaml:"clear_height"` // Player bottom needed to clear a double-jump kind
	Description        string  `yaml:"description"`
}

// DifficultyConfig defines the level-driven difficulty curve.
type DifficultyConfig struct {
	PointsPerLevel        int          `yaml:"points_per_level"`
	ScorePerTick          int          `yaml:"score_per_tick"`      // Points per score tick before the level bonus
	ScoreLevelDivisor     int          `yaml:"score_level_divisor"` // Every this many levels add one point per tick
	BaseSpeed             float64      `yaml:"base_speed"`
	SpeedIncrement        float64      `yaml:"speed_increment"`
	BaseSpawnDelay        Duration     `yaml:"base_spawn_delay"`
	MinSpawnDelay         Duration     `yaml:"min_spawn_delay"`
	SpawnDelayDecay       Duration     `yaml:"spawn_delay_decay"`
	BaseGroupChance       float64      `yaml:"base_group_chance"`
	GroupChanceGrowth     float64      `yaml:"group_chance_growth"`
	MaxGroupChance        float64      `yaml:"max_group_chance"`
	BaseGroupSize         int          `yaml:"base_group_size"`
	MaxGroupSize          int          `yaml:"max_group_size"`
	LevelsPerSizeIncrease int          `yaml:"levels_per_size_increase"`
	GroupMinLevel         int          `yaml:"group_min_level"` // Groups spawn only above this level
	Tiers                 []TierConfig `yaml:"tiers"`
}

// TierConfig names a difficulty tier starting at a level.
type TierConfig struct {
	Level int    `yaml:"level"`
	Name  string `yaml:"name"`
}

// SpawnerConfig defines spacing, burst and grouping heuristics.
type SpawnerConfig struct {
	SafeDistanceBase     float64  `yaml:"safe_distance_base"`
	SafeDistancePerLevel float64  `yaml:"safe_distance_per_level"`
	SafeDistancePerSpeed float64  `yaml:"safe_distance_per_speed"`
	SafeDistanceFloor    float64  `yaml:"safe_distance_floor"`
	GroupGap             float64  `yaml:"group_gap"` // Spacing gate threshold for staggered group members
	BurstMin             int      `yaml:"burst_min"`
	BurstMax             int      `yaml:"burst_max"`
	LevelsPerBurstStep   int      `yaml:"levels_per_burst_step"`
	BurstPause           Duration `yaml:"burst_pause"`
	GroupStagger         Duration `yaml:"group_stagger"`
	GroupDrawMin         int      `yaml:"group_draw_min"`
	GroupDrawMax         int      `yaml:"group_draw_max"`
	DoubleJumpCooldown   Duration `yaml:"double_jump_cooldown"`
}

// JumpConfig defines time-based jump timing and hitbox heights.
type JumpConfig struct {
	RiseDuration       Duration `yaml:"rise_duration"`
	DoubleRiseDuration Duration `yaml:"double_rise_duration"`
	DoubleWindow       Duration `yaml:"double_window"` // 0 accepts a double jump any time while rising
	SingleHeight       float64  `yaml:"single_height"` // Player bottom while rising
	DoubleHeight       float64  `yaml:"double_height"` // Player bottom while double rising
}

// CollisionConfig defines collision tolerance.
type CollisionConfig struct {
	Buffer float64 `yaml:"buffer"` // Each hitbox shrinks by this much on every side
}

// SessionConfig defines lives and the three periodic sources.
type SessionConfig struct {
	Lives               int      `yaml:"lives"` // 0 = single life, any collision ends the game
	InvincibilityWindow Duration `yaml:"invincibility_window"`
	StartDelay          Duration `yaml:"start_delay"`
	ResumeGrace         Duration `yaml:"resume_grace"`
	ScorePeriod         Duration `yaml:"score_period"`
	SpawnPeriod         Duration `yaml:"spawn_period"`
	SimPeriod           Duration `yaml:"sim_period"`
	MaxCatchUp          Duration `yaml:"max_catch_up"`
	MessageDuration     Duration `yaml:"message_duration"`
}

// AutoPlayConfig defines the auto-play jump margins.
type AutoPlayConfig struct {
	SingleMargin   float64  `yaml:"single_margin"`
	DoubleMargin   float64  `yaml:"double_margin"`
	MarginPerLevel float64  `yaml:"margin_per_level"`
	ReactionDelay  Duration `yaml:"reaction_delay"`
	DoubleGap      Duration `yaml:"double_gap"` // Delay between the two presses of an auto double jump
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown or empty values
// return ok=false, meaning "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *DinoConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		if cfg.Session.Lives > 0 {
			cfg.Session.Lives = 5
		}
		cfg.Difficulty.BaseSpawnDelay += Duration(300 * time.Millisecond)
	case DifficultyHard:
		if cfg.Session.Lives > 0 {
			cfg.Session.Lives = 2
		}
		cfg.Difficulty.SpeedIncrement = 0.16
	}
}
