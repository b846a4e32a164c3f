package game

import (
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

// Difficulty is the tuning in effect for one level.
type Difficulty struct {
	Level       int
	GameSpeed   float64
	SpawnDelay  time.Duration
	GroupChance float64
	GroupSize   int
	Tier        string
}

// DifficultyCurve maps cumulative score to difficulty. It is a pure function
// of score: every parameter is derived from the level alone.
type DifficultyCurve struct {
	cfg config.DifficultyConfig
}

// NewDifficultyCurve creates a curve from the configured constants.
func NewDifficultyCurve(cfg config.DifficultyConfig) DifficultyCurve {
	return DifficultyCurve{cfg: cfg}
}

// LevelFor returns floor(score / pointsPerLevel) + 1. Negative scores count as zero.
func (c DifficultyCurve) LevelFor(score int) int {
	if score < 0 {
		score = 0
	}
	return score/c.cfg.PointsPerLevel + 1
}

// Compute returns the difficulty for a score.
func (c DifficultyCurve) Compute(score int) Difficulty {
	return c.ForLevel(c.LevelFor(score))
}

// ForLevel returns the difficulty for a level.
func (c DifficultyCurve) ForLevel(level int) Difficulty {
	if level < 1 {
		level = 1
	}
	cfg := c.cfg

	delay := cfg.BaseSpawnDelay.D() - time.Duration(level)*cfg.SpawnDelayDecay.D()
	delay = max(delay, cfg.MinSpawnDelay.D())

	chance := min(cfg.MaxGroupChance, cfg.BaseGroupChance+float64(level)*cfg.GroupChanceGrowth)
	size := min(cfg.MaxGroupSize, cfg.BaseGroupSize+level/cfg.LevelsPerSizeIncrease)

	return Difficulty{
		Level:       level,
		GameSpeed:   cfg.BaseSpeed + float64(level)*cfg.SpeedIncrement,
		SpawnDelay:  delay,
		GroupChance: chance,
		GroupSize:   size,
		Tier:        c.TierName(level),
	}
}

// ScoreIncrement is the score gained per score tick at a level:
// level/score_level_divisor + score_per_tick.
func (c DifficultyCurve) ScoreIncrement(level int) int {
	div := max(c.cfg.ScoreLevelDivisor, 1)
	return max(level, 1)/div + c.cfg.ScorePerTick
}

// TierName returns the name of the highest tier whose level is reached.
func (c DifficultyCurve) TierName(level int) string {
	name := "Normal"
	for _, t := range c.cfg.Tiers {
		if level >= t.Level {
			name = t.Name
		}
	}
	return name
}
