package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

func newSpawner(seed int64) *Spawner {
	cfg := config.DefaultDinoConfig()
	return NewSpawner(cfg, defaultKinds(), seed)
}

func levelOne() Difficulty {
	return NewDifficultyCurve(config.DefaultDinoConfig().Difficulty).ForLevel(1)
}

func TestHasSpaceIdempotent(t *testing.T) {
	s := newSpawner(1)
	last := &Obstacle{Kind: kindNamed("cactus"), Position: 200}

	for _, threshold := range []float64{100, 200, 300} {
		first := s.HasSpace(last, threshold)
		second := s.HasSpace(last, threshold)
		if first != second {
			t.Errorf("HasSpace(%v) changed between calls: %v then %v", threshold, first, second)
		}
	}

	if !s.HasSpace(nil, 1000) {
		t.Error("empty field should always have space")
	}
	if s.HasSpace(last, 300) {
		t.Error("obstacle at 200 should block a 300 threshold")
	}
}

func TestSafeDistance(t *testing.T) {
	s := newSpawner(1)
	curve := NewDifficultyCurve(config.DefaultDinoConfig().Difficulty)

	if got := s.SafeDistance(curve.ForLevel(1)); !approx(got, 379.8) {
		t.Errorf("SafeDistance(level 1) = %v, expected 379.8", got)
	}
	if got := s.SafeDistance(curve.ForLevel(40)); got != 150 {
		t.Errorf("SafeDistance(level 40) = %v, expected floor 150", got)
	}
}

func TestBurstLength(t *testing.T) {
	s := newSpawner(1)

	tests := []struct {
		level, n int
	}{
		{1, 3},
		{4, 3},
		{5, 4},
		{10, 5},
		{40, 5},
	}

	for _, tc := range tests {
		if got := s.BurstLength(tc.level); got != tc.n {
			t.Errorf("BurstLength(%d) = %d, expected %d", tc.level, got, tc.n)
		}
	}
}

func TestMaybeSpawnTimingGate(t *testing.T) {
	s := newSpawner(1)
	s.Reset(0)
	d := levelOne()

	if got := s.MaybeSpawn(SpawnView{Now: 1000 * ms, Difficulty: d}); got != nil {
		t.Errorf("spawned before the delay: %+v", got)
	}

	got := s.MaybeSpawn(SpawnView{Now: d.SpawnDelay, Difficulty: d})
	if len(got) != 1 || got[0].Delay != 0 || got[0].Group {
		t.Fatalf("expected one immediate spawn, got %+v", got)
	}
}

func TestMaybeSpawnSpacingGate(t *testing.T) {
	s := newSpawner(1)
	s.Reset(0)
	d := levelOne()
	near := &Obstacle{Kind: kindNamed("rock"), Position: 100}

	if got := s.MaybeSpawn(SpawnView{Now: 5 * time.Second, Difficulty: d, Last: near}); got != nil {
		t.Errorf("spawned with the last obstacle too close: %+v", got)
	}

	// A blocked check must not consume the timing gate.
	if got := s.MaybeSpawn(SpawnView{Now: 5 * time.Second, Difficulty: d}); len(got) != 1 {
		t.Errorf("expected a spawn once space opens, got %+v", got)
	}
}

func TestMaybeSpawnBurstPause(t *testing.T) {
	s := newSpawner(1)
	s.Reset(0)
	d := levelOne()
	n := s.BurstLength(d.Level)

	now := time.Duration(0)
	for i := 1; i < n; i++ {
		now += d.SpawnDelay
		if got := s.MaybeSpawn(SpawnView{Now: now, Difficulty: d}); len(got) == 0 {
			t.Fatalf("spawn %d of the burst was empty", i)
		}
	}

	now += d.SpawnDelay
	if got := s.MaybeSpawn(SpawnView{Now: now, Difficulty: d}); got != nil {
		t.Fatalf("last gated spawn of a burst should be a pause, got %+v", got)
	}

	pause := config.DefaultDinoConfig().Spawner.BurstPause.D()
	if next := s.NextAllowed(d); next != now+pause+d.SpawnDelay {
		t.Errorf("NextAllowed() = %v, expected %v", next, now+pause+d.SpawnDelay)
	}
}

func TestGroupsOnlyAboveMinLevel(t *testing.T) {
	curve := NewDifficultyCurve(config.DefaultDinoConfig().Difficulty)

	d := curve.ForLevel(3)
	d.GroupChance = 1
	s := newSpawner(1)
	s.Reset(0)
	for i := range 20 {
		got := s.MaybeSpawn(SpawnView{Now: time.Duration(i+1) * time.Hour, Difficulty: d})
		if len(got) > 1 {
			t.Fatalf("group spawned at level 3: %+v", got)
		}
	}
}

func TestGroupSpawn(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	d := NewDifficultyCurve(cfg.Difficulty).ForLevel(20)
	d.GroupChance = 1
	s := newSpawner(7)
	s.Reset(0)

	groups := 0
	for i := range 50 {
		got := s.MaybeSpawn(SpawnView{Now: time.Duration(i+1) * time.Hour, Difficulty: d})
		if got == nil {
			continue // burst pause
		}
		groups++

		if len(got) < cfg.Spawner.GroupDrawMin || len(got) > d.GroupSize {
			t.Fatalf("group size %d outside [%d, %d]", len(got), cfg.Spawner.GroupDrawMin, d.GroupSize)
		}
		for j, r := range got {
			if !r.Kind.Simple() {
				t.Errorf("group member %d is %s, expected a simple kind", j, r.Kind.Name)
			}
			if want := time.Duration(j) * cfg.Spawner.GroupStagger.D(); r.Delay != want {
				t.Errorf("member %d delay = %v, expected %v", j, r.Delay, want)
			}
			if r.Group != (j > 0) {
				t.Errorf("member %d Group = %v", j, r.Group)
			}
		}
	}
	if groups == 0 {
		t.Error("no groups spawned with GroupChance 1")
	}
}

func TestRiverCooldown(t *testing.T) {
	river := kindNamed("river")
	cactus := kindNamed("cactus")
	river.Weight = 100
	cactus.Weight = 0
	s := NewSpawner(config.DefaultDinoConfig(), []Kind{river, cactus}, 3)
	d := levelOne()
	now := time.Hour

	got := s.single(SpawnView{Now: now, Difficulty: d, HasDoubleJump: true, LastDoubleJump: now - time.Second})
	if got.Name != "cactus" {
		t.Errorf("inside cooldown got %s, expected cactus", got.Name)
	}

	got = s.single(SpawnView{Now: now, Difficulty: d, HasDoubleJump: true, LastDoubleJump: now - 6*time.Second})
	if got.Name != "river" {
		t.Errorf("after cooldown got %s, expected river", got.Name)
	}

	got = s.single(SpawnView{Now: now, Difficulty: d})
	if got.Name != "river" {
		t.Errorf("without a double jump got %s, expected river", got.Name)
	}
}

func TestWeightedSkipsZeroWeight(t *testing.T) {
	cactus := kindNamed("cactus")
	rock := kindNamed("rock")
	cactus.Weight = 1
	rock.Weight = 0
	s := NewSpawner(config.DefaultDinoConfig(), []Kind{cactus, rock}, 9)

	for range 200 {
		if k := s.weighted(s.kinds, s.total); k.Name != "cactus" {
			t.Fatalf("weighted() picked %s with zero weight", k.Name)
		}
	}
}

func TestSpawnerDeterminism(t *testing.T) {
	d := NewDifficultyCurve(config.DefaultDinoConfig().Difficulty).ForLevel(8)
	a, b := newSpawner(42), newSpawner(42)
	a.Reset(0)
	b.Reset(0)

	for i := range 100 {
		now := time.Duration(i+1) * 2 * time.Second
		ra := a.MaybeSpawn(SpawnView{Now: now, Difficulty: d})
		rb := b.MaybeSpawn(SpawnView{Now: now, Difficulty: d})
		if len(ra) != len(rb) {
			t.Fatalf("check %d: %d vs %d requests", i, len(ra), len(rb))
		}
		for j := range ra {
			if ra[j].Kind.Name != rb[j].Kind.Name {
				t.Fatalf("check %d member %d: %s vs %s", i, j, ra[j].Kind.Name, rb[j].Kind.Name)
			}
		}
	}
}
