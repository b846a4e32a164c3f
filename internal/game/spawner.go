package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

// SpawnRequest asks the session to create one obstacle after Delay.
// Members of a group after the first are re-checked against the spacing gate
// when their delay elapses.
type SpawnRequest struct {
	Kind  Kind
	Delay time.Duration
	Group bool
}

// SpawnView is the slice of session state the spawner reads.
type SpawnView struct {
	Now        time.Duration
	Difficulty Difficulty
	Last       *Obstacle // most recently spawned live obstacle, nil if none

	LastDoubleJump time.Duration
	HasDoubleJump  bool
}

// Spawner decides when and what to spawn.
type Spawner struct {
	cfg    config.SpawnerConfig
	kinds  []Kind
	simple []Kind
	total  int // sum of kind weights

	groupMinLevel int

	rng         *rand.Rand
	lastSpawnAt time.Duration
	consecutive int
}

// NewSpawner creates a spawner over the configured kinds with the given RNG seed.
func NewSpawner(cfg config.DinoConfig, kinds []Kind, seed int64) *Spawner {
	s := &Spawner{
		cfg:           cfg.Spawner,
		kinds:         kinds,
		groupMinLevel: cfg.Difficulty.GroupMinLevel,
		rng:           rand.New(rand.NewSource(seed)),
	}
	for _, k := range kinds {
		s.total += k.Weight
		if k.Simple() {
			s.simple = append(s.simple, k)
		}
	}
	return s
}

// Reset restarts pacing from now. The RNG stream continues so a seeded run
// stays reproducible across restarts.
func (s *Spawner) Reset(now time.Duration) {
	s.lastSpawnAt = now
	s.consecutive = 0
}

// Shift moves the timing gate d later.
func (s *Spawner) Shift(d time.Duration) {
	if d > 0 {
		s.lastSpawnAt += d
	}
}

// SafeDistance is the minimum distance the last obstacle must have travelled
// before another may spawn.
func (s *Spawner) SafeDistance(d Difficulty) float64 {
	dist := s.cfg.SafeDistanceBase - s.cfg.SafeDistancePerLevel*float64(d.Level) + s.cfg.SafeDistancePerSpeed*d.GameSpeed
	return max(dist, s.cfg.SafeDistanceFloor)
}

// HasSpace reports whether the most recent obstacle has moved past threshold.
// It has no side effects.
func (s *Spawner) HasSpace(last *Obstacle, threshold float64) bool {
	if last == nil {
		return true
	}
	return last.Position > threshold
}

// BurstLength is the number of gated spawns per burst; the last one is
// replaced by a pause.
func (s *Spawner) BurstLength(level int) int {
	n := s.cfg.BurstMin
	if s.cfg.LevelsPerBurstStep > 0 {
		n += level / s.cfg.LevelsPerBurstStep
	}
	return min(n, s.cfg.BurstMax)
}

// NextAllowed returns the earliest time the timing gate opens.
func (s *Spawner) NextAllowed(d Difficulty) time.Duration {
	return s.lastSpawnAt + d.SpawnDelay
}

// MaybeSpawn runs the timing, spacing and burst gates and returns what to
// spawn. A nil result means nothing spawns this check.
func (s *Spawner) MaybeSpawn(v SpawnView) []SpawnRequest {
	if v.Now < s.NextAllowed(v.Difficulty) {
		return nil
	}
	if !s.HasSpace(v.Last, s.SafeDistance(v.Difficulty)) {
		return nil
	}

	s.lastSpawnAt = v.Now
	s.consecutive++
	if s.consecutive >= s.BurstLength(v.Difficulty.Level) {
		s.consecutive = 0
		s.lastSpawnAt = v.Now + s.cfg.BurstPause.D()
		return nil
	}

	if v.Difficulty.Level > s.groupMinLevel && len(s.simple) > 0 && s.rng.Float64() < v.Difficulty.GroupChance {
		return s.group(v.Difficulty)
	}
	return []SpawnRequest{{Kind: s.single(v)}}
}

func (s *Spawner) group(d Difficulty) []SpawnRequest {
	lo, hi := s.cfg.GroupDrawMin, s.cfg.GroupDrawMax
	drawn := lo
	if hi > lo {
		drawn = lo + s.rng.Intn(hi-lo+1)
	}
	size := max(min(d.GroupSize, drawn), 1)

	reqs := make([]SpawnRequest, 0, size)
	for i := range size {
		reqs = append(reqs, SpawnRequest{
			Kind:  s.simple[s.rng.Intn(len(s.simple))],
			Delay: time.Duration(i) * s.cfg.GroupStagger.D(),
			Group: i > 0,
		})
	}
	return reqs
}

func (s *Spawner) single(v SpawnView) Kind {
	k := s.weighted(s.kinds, s.total)
	if !k.RequiresDoubleJump || !v.HasDoubleJump {
		return k
	}
	if v.Now-v.LastDoubleJump >= s.cfg.DoubleJumpCooldown.D() {
		return k
	}

	// Recently cleared a double-jump kind: redraw among the rest.
	rest := make([]Kind, 0, len(s.kinds))
	total := 0
	for _, other := range s.kinds {
		if !other.RequiresDoubleJump {
			rest = append(rest, other)
			total += other.Weight
		}
	}
	if len(rest) == 0 {
		return k
	}
	return s.weighted(rest, total)
}

func (s *Spawner) weighted(kinds []Kind, total int) Kind {
	if total <= 0 {
		return kinds[s.rng.Intn(len(kinds))]
	}
	r := s.rng.Intn(total)
	for _, k := range kinds {
		if r < k.Weight {
			return k
		}
		r -= k.Weight
	}
	return kinds[len(kinds)-1]
}
