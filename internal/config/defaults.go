package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultDinoYAML
}

func ms(n int) Duration {
	return Duration(time.Duration(n) * time.Millisecond)
}

// DefaultDinoConfig returns the default runner configuration.
// It mirrors defaults/dino.yaml and is used if the embedded file fails to parse.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Field: FieldConfig{
			Width:         800,
			Height:        280,
			Ground:        5,
			DespawnMargin: 50,
		},
		Player: PlayerConfig{
			X:      80,
			Width:  60,
			Height: 70,
		},
		Obstacles: ObstacleConfig{
			SpeedScale: 4.5,
			Kinds: []KindConfig{
				{Name: "cactus", Class: "low", Width: 25, Height: 60, Weight: 40, Difficulty: 1.0, Description: "Single jump"},
				{Name: "rock", Class: "medium", Width: 50, Height: 40, Weight: 35, Difficulty: 1.1, Description: "Single jump"},
				{Name: "river", Class: "wide", Width: 120, Height: 30, Weight: 15, Difficulty: 1.8, RequiresDoubleJump: true, ClearHeight: 160, Description: "Double jump required!"},
				{Name: "other-dino", Class: "tall", Width: 50, Height: 60, Weight: 10, Difficulty: 1.3, Description: "Single jump"},
			},
		},
		Difficulty: DifficultyConfig{
			PointsPerLevel:        100,
			ScorePerTick:          1,
			ScoreLevelDivisor:     2,
			BaseSpeed:             1.0,
			SpeedIncrement:        0.12,
			BaseSpawnDelay:        ms(1800),
			MinSpawnDelay:         ms(900),
			SpawnDelayDecay:       ms(40),
			BaseGroupChance:       0.2,
			GroupChanceGrowth:     0.02,
			MaxGroupChance:        0.5,
			BaseGroupSize:         2,
			MaxGroupSize:          4,
			LevelsPerSizeIncrease: 6,
			GroupMinLevel:         3,
			Tiers: []TierConfig{
				{Level: 1, Name: "Very Easy"},
				{Level: 3, Name: "Easy"},
				{Level: 5, Name: "Normal"},
				{Level: 8, Name: "Hard"},
				{Level: 12, Name: "Very Hard"},
				{Level: 15, Name: "Expert"},
			},
		},
		Spawner: SpawnerConfig{
			SafeDistanceBase:     350,
			SafeDistancePerLevel: 15,
			SafeDistancePerSpeed: 40,
			SafeDistanceFloor:    150,
			GroupGap:             60,
			BurstMin:             3,
			BurstMax:             5,
			LevelsPerBurstStep:   5,
			BurstPause:           ms(1000),
			GroupStagger:         ms(250),
			GroupDrawMin:         2,
			GroupDrawMax:         4,
			DoubleJumpCooldown:   ms(5000),
		},
		Jump: JumpConfig{
			RiseDuration:       ms(500),
			DoubleRiseDuration: ms(600),
			DoubleWindow:       ms(300),
			SingleHeight:       125,
			DoubleHeight:       195,
		},
		Collision: CollisionConfig{
			Buffer: 3,
		},
		Session: SessionConfig{
			Lives:               3,
			InvincibilityWindow: ms(2500),
			StartDelay:          ms(1500),
			ResumeGrace:         ms(1000),
			ScorePeriod:         ms(200),
			SpawnPeriod:         ms(100),
			SimPeriod:           ms(16),
			MaxCatchUp:          ms(250),
			MessageDuration:     ms(1500),
		},
		AutoPlay: AutoPlayConfig{
			SingleMargin:   100,
			DoubleMargin:   170,
			MarginPerLevel: 4,
			ReactionDelay:  ms(50),
			DoubleGap:      ms(20),
		},
		Tips: []string{
			"Tip: Rivers require quick double jumps!",
			"Tip: Watch for obstacle patterns and rhythm",
			"Tip: Use Auto-Jump mode to learn timing",
			"Tip: Higher levels give more points per second",
			"Tip: Take breaks with the pause feature",
			"Tip: Practice makes perfect!",
			"Tip: Obstacles come in predictable patterns",
			"Tip: Don't panic at obstacle groups - keep rhythm",
		},
	}
}
