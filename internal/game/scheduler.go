package game

import (
	"sort"
	"time"
)

// Source identifies one of the periodic tick sources.
type Source int

const (
	SourceScore Source = iota
	SourceSpawn
	SourceSim
	numSources
)

func (s Source) String() string {
	switch s {
	case SourceScore:
		return "score"
	case SourceSpawn:
		return "spawn"
	case SourceSim:
		return "sim"
	default:
		return "unknown"
	}
}

// TickFunc handles an event firing at its scheduled time.
type TickFunc func(at time.Duration)

type periodic struct {
	period  time.Duration
	next    time.Duration
	handler TickFunc
}

type task struct {
	at  time.Duration
	gen uint64
	seq uint64
	fn  TickFunc
}

// Scheduler drives the periodic sources and deferred one-shot tasks from an
// externally supplied monotonic time. Nothing runs between Advance calls.
//
// The periodic sources start and stop together. Deferred tasks belong to a
// generation; NewGeneration drops every queued task so callbacks from a
// previous run can never fire.
type Scheduler struct {
	sources    [numSources]periodic
	running    bool
	maxCatchUp time.Duration

	tasks []task
	seq   uint64
	gen   uint64
}

// NewScheduler creates a stopped scheduler. Lag larger than maxCatchUp is
// dropped instead of replayed; zero replays everything.
func NewScheduler(score, spawn, sim, maxCatchUp time.Duration) *Scheduler {
	s := &Scheduler{maxCatchUp: maxCatchUp}
	s.sources[SourceScore].period = score
	s.sources[SourceSpawn].period = spawn
	s.sources[SourceSim].period = sim
	return s
}

// Handle sets the handler of a periodic source.
func (s *Scheduler) Handle(src Source, fn TickFunc) {
	s.sources[src].handler = fn
}

// Start arms all periodic sources; each first fires one period after at.
func (s *Scheduler) Start(at time.Duration) {
	for i := range s.sources {
		s.sources[i].next = at + s.sources[i].period
	}
	s.running = true
}

// Stop halts all periodic sources. Deferred tasks stay queued.
func (s *Scheduler) Stop() {
	s.running = false
}

// Running reports whether the periodic sources are armed.
func (s *Scheduler) Running() bool {
	return s.running
}

// Generation returns the current task generation.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// NewGeneration stops the periodic sources, drops all queued tasks and
// returns the new generation number.
func (s *Scheduler) NewGeneration() uint64 {
	s.running = false
	s.tasks = s.tasks[:0]
	s.gen++
	return s.gen
}

// CancelTasks drops every queued deferred task. The generation is kept.
func (s *Scheduler) CancelTasks() {
	s.tasks = s.tasks[:0]
}

// After queues fn to run once at the given time in the current generation.
func (s *Scheduler) After(at time.Duration, fn TickFunc) {
	s.seq++
	t := task{at: at, gen: s.gen, seq: s.seq, fn: fn}
	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].at > at
	})
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// Pending returns the number of queued deferred tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance fires every event due at or before now in time order.
// Ties fire deferred tasks first, then score, spawn and sim.
// Handlers may call Stop, Start, After, CancelTasks or NewGeneration.
func (s *Scheduler) Advance(now time.Duration) {
	s.dropLag(now)

	for {
		at, src, ok := s.nextDue(now)
		if !ok {
			return
		}

		if src < 0 {
			t := s.tasks[0]
			s.tasks = s.tasks[1:]
			if t.gen == s.gen {
				t.fn(t.at)
			}
			continue
		}

		p := &s.sources[src]
		p.next += p.period
		if p.handler != nil {
			p.handler(at)
		}
	}
}

// nextDue returns the earliest due event. src is -1 for a deferred task.
func (s *Scheduler) nextDue(now time.Duration) (time.Duration, Source, bool) {
	var (
		best  time.Duration
		src   Source = -1
		found bool
	)
	if len(s.tasks) > 0 && s.tasks[0].at <= now {
		best, found = s.tasks[0].at, true
	}
	if !s.running {
		return best, src, found
	}
	for i := range s.sources {
		p := s.sources[i]
		if p.period <= 0 || p.next > now {
			continue
		}
		if !found || p.next < best {
			best, src, found = p.next, Source(i), true
		}
	}
	return best, src, found
}

// dropLag moves sources that fell more than maxCatchUp behind forward by
// whole periods, so a stalled host does not replay a burst of stale ticks.
func (s *Scheduler) dropLag(now time.Duration) {
	if !s.running || s.maxCatchUp <= 0 {
		return
	}
	for i := range s.sources {
		p := &s.sources[i]
		if p.period <= 0 {
			continue
		}
		lag := now - p.next
		if lag <= s.maxCatchUp {
			continue
		}
		skip := (lag - s.maxCatchUp + p.period - 1) / p.period
		p.next += skip * p.period
	}
}
