package game

import (
	"testing"
	"time"
)

type tickLog struct {
	events []string
	counts map[Source]int
}

func newTickLog(s *Scheduler) *tickLog {
	l := &tickLog{counts: make(map[Source]int)}
	for _, src := range []Source{SourceScore, SourceSpawn, SourceSim} {
		s.Handle(src, func(time.Duration) {
			l.counts[src]++
			l.events = append(l.events, src.String())
		})
	}
	return l
}

func TestSchedulerPeriods(t *testing.T) {
	s := NewScheduler(200*ms, 100*ms, 16*ms, 0)
	l := newTickLog(s)

	s.Start(0)
	s.Advance(200 * ms)

	if l.counts[SourceScore] != 1 || l.counts[SourceSpawn] != 2 || l.counts[SourceSim] != 12 {
		t.Errorf("counts = %v, expected score=1 spawn=2 sim=12", l.counts)
	}
}

func TestSchedulerNotRunningUntilStarted(t *testing.T) {
	s := NewScheduler(200*ms, 100*ms, 16*ms, 0)
	l := newTickLog(s)

	s.Advance(time.Second)
	if len(l.events) != 0 {
		t.Errorf("stopped scheduler fired %v", l.events)
	}
}

func TestSchedulerTieOrder(t *testing.T) {
	s := NewScheduler(100*ms, 100*ms, 100*ms, 0)
	l := newTickLog(s)
	s.Start(0)
	s.After(100*ms, func(time.Duration) { l.events = append(l.events, "task") })

	s.Advance(100 * ms)

	expected := []string{"task", "score", "spawn", "sim"}
	if len(l.events) != len(expected) {
		t.Fatalf("events = %v, expected %v", l.events, expected)
	}
	for i := range expected {
		if l.events[i] != expected[i] {
			t.Errorf("events[%d] = %q, expected %q", i, l.events[i], expected[i])
		}
	}
}

func TestSchedulerTasksInTimeOrder(t *testing.T) {
	s := NewScheduler(time.Hour, time.Hour, time.Hour, 0)
	var got []int
	s.After(30*ms, func(time.Duration) { got = append(got, 3) })
	s.After(10*ms, func(time.Duration) { got = append(got, 1) })
	s.After(20*ms, func(time.Duration) { got = append(got, 2) })
	s.After(20*ms, func(time.Duration) { got = append(got, 22) })

	s.Advance(25 * ms)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 22 {
		t.Errorf("after 25ms got %v, expected [1 2 22]", got)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}

	s.Advance(30 * ms)
	if len(got) != 4 || got[3] != 3 {
		t.Errorf("after 30ms got %v", got)
	}
}

func TestSchedulerTaskReceivesScheduledTime(t *testing.T) {
	s := NewScheduler(time.Hour, time.Hour, time.Hour, 0)
	var at time.Duration
	s.After(40*ms, func(t time.Duration) { at = t })

	s.Advance(time.Second)
	if at != 40*ms {
		t.Errorf("task fired with %v, expected 40ms", at)
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(200*ms, 100*ms, 16*ms, 0)
	l := newTickLog(s)
	s.Start(0)
	s.Advance(100 * ms)
	before := len(l.events)

	s.Stop()
	fired := false
	s.After(150*ms, func(time.Duration) { fired = true })
	s.Advance(time.Second)

	if len(l.events) != before {
		t.Errorf("stopped sources fired %d more events", len(l.events)-before)
	}
	if !fired {
		t.Error("deferred tasks should still fire while stopped")
	}
	if s.Running() {
		t.Error("Running() = true after Stop")
	}
}

func TestSchedulerStopFromHandler(t *testing.T) {
	s := NewScheduler(100*ms, 100*ms, 100*ms, 0)
	l := newTickLog(s)
	s.Handle(SourceScore, func(time.Duration) {
		l.events = append(l.events, "score")
		s.Stop()
	})
	s.Start(0)

	s.Advance(time.Second)
	if len(l.events) != 1 || l.events[0] != "score" {
		t.Errorf("events = %v, expected only the stopping score tick", l.events)
	}
}

func TestSchedulerNewGenerationDropsTasks(t *testing.T) {
	s := NewScheduler(time.Hour, time.Hour, time.Hour, 0)
	fired := false
	s.After(10*ms, func(time.Duration) { fired = true })

	gen := s.NewGeneration()
	if gen != s.Generation() {
		t.Errorf("NewGeneration() = %d, Generation() = %d", gen, s.Generation())
	}
	s.Advance(time.Second)

	if fired {
		t.Error("task from a previous generation fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerCancelTasksKeepsGeneration(t *testing.T) {
	s := NewScheduler(time.Hour, time.Hour, time.Hour, 0)
	gen := s.Generation()
	fired := 0
	s.After(10*ms, func(time.Duration) { fired++ })
	s.After(20*ms, func(time.Duration) { fired++ })

	s.CancelTasks()
	s.After(30*ms, func(time.Duration) { fired += 10 })
	s.Advance(time.Second)

	if fired != 10 {
		t.Errorf("fired = %d, expected only the task queued after cancel", fired)
	}
	if s.Generation() != gen {
		t.Errorf("Generation() = %d, expected %d", s.Generation(), gen)
	}
}

func TestSchedulerStaleTaskQueuedDuringAdvance(t *testing.T) {
	s := NewScheduler(time.Hour, time.Hour, time.Hour, 0)
	fired := false
	s.After(10*ms, func(time.Duration) {
		s.NewGeneration()
	})
	s.After(20*ms, func(time.Duration) { fired = true })

	s.Advance(time.Second)
	if fired {
		t.Error("task queued before a generation change fired after it")
	}
}

func TestSchedulerDropsLag(t *testing.T) {
	s := NewScheduler(200*ms, 100*ms, 16*ms, 250*ms)
	l := newTickLog(s)
	s.Start(0)

	s.Advance(10 * time.Second)

	if n := l.counts[SourceSim]; n == 0 || n > 17 {
		t.Errorf("sim ticks after a 10s stall = %d, expected at most 17", n)
	}
	if n := l.counts[SourceScore]; n == 0 || n > 2 {
		t.Errorf("score ticks after a 10s stall = %d, expected at most 2", n)
	}
}

func TestSchedulerRestartRealigns(t *testing.T) {
	s := NewScheduler(200*ms, 100*ms, 16*ms, 0)
	l := newTickLog(s)
	s.Start(0)
	s.Advance(50 * ms)
	s.Stop()

	s.Start(time.Second)
	s.Advance(time.Second + 199*ms)
	if l.counts[SourceScore] != 0 {
		t.Errorf("score fired before one period after restart")
	}
	s.Advance(time.Second + 200*ms)
	if l.counts[SourceScore] != 1 {
		t.Errorf("score count = %d, expected 1", l.counts[SourceScore])
	}
}
