package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Obstacle classes understood by the spawner.
const (
	ClassLow    = "low"
	ClassMedium = "medium"
	ClassWide   = "wide"
	ClassTall   = "tall"
)

// Validate checks the tables for values the simulation cannot run with.
// All problems are reported together.
func (c *DinoConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Field.Width <= 0 {
		fail("field.width must be positive")
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		fail("player width and height must be positive")
	}

	if len(c.Obstacles.Kinds) == 0 {
		fail("obstacles.kinds must not be empty")
	}
	if c.Obstacles.SpeedScale <= 0 {
		fail("obstacles.speed_scale must be positive")
	}
	totalWeight := 0
	seen := make(map[string]bool, len(c.Obstacles.Kinds))
	for i, k := range c.Obstacles.Kinds {
		if k.Name == "" {
			fail("obstacles.kinds[%d]: name is required", i)
		} else if seen[k.Name] {
			fail("obstacles.kinds[%d]: duplicate name %q", i, k.Name)
		}
		seen[k.Name] = true

		switch k.Class {
		case ClassLow, ClassMedium, ClassWide, ClassTall:
		default:
			fail("obstacles.kinds[%d]: unknown class %q", i, k.Class)
		}
		if k.Width <= 0 || k.Height <= 0 {
			fail("obstacles.kinds[%d]: width and height must be positive", i)
		}
		if k.Weight < 0 {
			fail("obstacles.kinds[%d]: weight must not be negative", i)
		}
		if k.Difficulty <= 0 {
			fail("obstacles.kinds[%d]: difficulty must be positive", i)
		}
		if k.RequiresDoubleJump && k.ClearHeight <= 0 {
			fail("obstacles.kinds[%d]: double-jump kinds need a clear_height", i)
		}
		totalWeight += k.Weight
	}
	if len(c.Obstacles.Kinds) > 0 && totalWeight == 0 {
		fail("obstacles.kinds: total weight must be positive")
	}

	d := c.Difficulty
	if d.PointsPerLevel <= 0 {
		fail("difficulty.points_per_level must be positive")
	}
	if d.ScorePerTick < 1 || d.ScoreLevelDivisor <= 0 {
		fail("difficulty score needs score_per_tick >= 1 and score_level_divisor > 0")
	}
	if d.BaseSpeed <= 0 || d.SpeedIncrement < 0 {
		fail("difficulty speed must start positive and never decrease")
	}
	if d.MinSpawnDelay <= 0 || d.BaseSpawnDelay < d.MinSpawnDelay || d.SpawnDelayDecay < 0 {
		fail("difficulty spawn delay needs 0 < min <= base and decay >= 0")
	}
	if d.BaseGroupChance < 0 || d.MaxGroupChance > 1 || d.BaseGroupChance > d.MaxGroupChance {
		fail("difficulty group chance must satisfy 0 <= base <= max <= 1")
	}
	if d.BaseGroupSize < 1 || d.MaxGroupSize < d.BaseGroupSize || d.LevelsPerSizeIncrease <= 0 {
		fail("difficulty group size needs 1 <= base <= max and levels_per_size_increase > 0")
	}
	if !sort.SliceIsSorted(d.Tiers, func(i, j int) bool { return d.Tiers[i].Level < d.Tiers[j].Level }) {
		fail("difficulty.tiers must be sorted by level")
	}

	s := c.Spawner
	if s.BurstMin < 1 || s.BurstMax < s.BurstMin || s.LevelsPerBurstStep <= 0 {
		fail("spawner burst needs 1 <= burst_min <= burst_max and levels_per_burst_step > 0")
	}
	if s.GroupDrawMin < 1 || s.GroupDrawMax < s.GroupDrawMin {
		fail("spawner group draw needs 1 <= min <= max")
	}
	if s.SafeDistanceFloor < 0 || s.GroupGap < 0 || s.BurstPause < 0 || s.GroupStagger < 0 || s.DoubleJumpCooldown < 0 {
		fail("spawner distances and durations must not be negative")
	}

	j := c.Jump
	if j.RiseDuration <= 0 || j.DoubleRiseDuration <= 0 || j.DoubleWindow < 0 {
		fail("jump durations must be positive")
	}
	if j.SingleHeight <= 0 || j.DoubleHeight <= j.SingleHeight {
		fail("jump heights need 0 < single_height < double_height")
	}

	if c.Collision.Buffer < 0 {
		fail("collision.buffer must not be negative")
	}

	ss := c.Session
	if ss.Lives < 0 {
		fail("session.lives must not be negative")
	}
	if ss.ScorePeriod <= 0 || ss.SpawnPeriod <= 0 || ss.SimPeriod <= 0 {
		fail("session periods must be positive")
	}
	if ss.InvincibilityWindow < 0 || ss.StartDelay < 0 || ss.ResumeGrace < 0 || ss.MaxCatchUp < 0 {
		fail("session durations must not be negative")
	}

	a := c.AutoPlay
	if a.SingleMargin < 0 || a.DoubleMargin < 0 || a.MarginPerLevel < 0 || a.ReactionDelay < 0 || a.DoubleGap < 0 {
		fail("autoplay margins and delays must not be negative")
	}

	return errors.Join(errs...)
}
