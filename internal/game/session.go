package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// Options configures a Session.
type Options struct {
	Config   config.DinoConfig
	Mode     string
	Seed     int64
	AutoPlay bool

	Store  HighScoreStore // nil keeps the high score in memory
	Sink   Sink           // nil discards render effects
	Logger *log.Logger    // nil discards logs
}

// Session owns one run of the game: score, lives, level, obstacles, the
// jump state and the scheduler that drives them. It is not safe for
// concurrent use; drive it from a single goroutine.
type Session struct {
	cfg  config.DinoConfig
	mode string

	curve   DifficultyCurve
	spawner *Spawner
	jumper  *JumpController
	collide CollisionDetector
	pilot   *AutoPilot
	sched   *Scheduler

	sink   Sink
	store  HighScoreStore
	logger *log.Logger
	tipRNG *rand.Rand

	phase           Phase
	score           int
	lives           int
	highScore       int
	newRecord       bool
	diff            Difficulty
	autoPlay        bool
	obstacles       []Obstacle
	nextID          int
	invincibleUntil time.Duration
	pausedAt        time.Duration
	generation      uint64
	tip             string
	now             time.Duration
}

// NewSession validates the config and creates a session in PhaseNotStarted.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	s := &Session{
		cfg:      cfg,
		mode:     opts.Mode,
		curve:    NewDifficultyCurve(cfg.Difficulty),
		spawner:  NewSpawner(cfg, KindsFromConfig(cfg.Obstacles.Kinds), opts.Seed),
		jumper:   NewJumpController(cfg.Jump),
		collide:  NewCollisionDetector(cfg),
		pilot:    NewAutoPilot(cfg),
		sink:     opts.Sink,
		store:    opts.Store,
		logger:   opts.Logger,
		tipRNG:   rand.New(rand.NewSource(opts.Seed + 1)),
		autoPlay: opts.AutoPlay,
	}
	if s.sink == nil {
		s.sink = NopSink{}
	}
	if s.store == nil {
		s.store = NewMemoryHighScore(0)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	sc := cfg.Session
	s.sched = NewScheduler(sc.ScorePeriod.D(), sc.SpawnPeriod.D(), sc.SimPeriod.D(), sc.MaxCatchUp.D())
	s.sched.Handle(SourceScore, s.scoreTick)
	s.sched.Handle(SourceSpawn, s.spawnTick)
	s.sched.Handle(SourceSim, s.simTick)

	high, err := s.store.HighScore()
	if err != nil {
		s.logger.Warn("could not load high score", "err", err)
	}
	s.highScore = max(high, 0)

	s.reset(0)
	return s, nil
}

// Handle applies an input event after advancing the scheduler to its time.
func (s *Session) Handle(ev core.InputEvent) {
	s.Advance(ev.At)

	switch ev.Action {
	case core.ActionJump:
		s.Jump(ev.At)
	case core.ActionPause:
		s.Pause(ev.At)
	case core.ActionResume:
		s.Resume(ev.At)
	case core.ActionRestart:
		s.Restart(ev.At)
	case core.ActionToggleAuto:
		s.ToggleAutoPlay()
	case core.ActionContinue:
		s.Continue(ev.At)
	}
}

// Advance fires every periodic tick and deferred task due by now.
// Time never moves backwards; an earlier now is ignored.
func (s *Session) Advance(now time.Duration) {
	if now < s.now {
		return
	}
	s.now = now
	s.sched.Advance(now)
}

// Jump is the primary action. It starts a new session, resumes a paused one,
// continues after a lost life, and otherwise requests a jump.
func (s *Session) Jump(now time.Duration) {
	switch s.phase {
	case PhaseNotStarted:
		s.start(now)
	case PhasePaused:
		s.Resume(now)
	case PhaseLifeLost:
		s.Continue(now)
	case PhaseRunning:
		s.jump(now)
	}
}

// Pause freezes a running session. Queued group members and autopilot
// presses are dropped.
func (s *Session) Pause(now time.Duration) {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhasePaused
	s.pausedAt = now
	s.sched.Stop()
	s.sched.CancelTasks()
	s.pilot.Reset()
	s.sink.Cue(CuePause)
	s.message("Game Paused")
	s.logger.Debug("paused", "at", now, "score", s.score)
	s.emit()
}

// Resume restarts the periodic sources after a short grace period.
// Invincibility, jump and spawn timing resume where the pause froze them.
func (s *Session) Resume(now time.Duration) {
	if s.phase != PhasePaused {
		return
	}
	if paused := now - s.pausedAt; paused > 0 {
		if s.invincibleUntil > s.pausedAt {
			s.invincibleUntil += paused
		}
		s.jumper.Shift(paused)
		s.spawner.Shift(paused)
	}
	s.phase = PhaseRunning
	s.sched.Start(now + s.cfg.Session.ResumeGrace.D())
	s.sink.Cue(CueResume)
	s.message("Get Ready!")
	s.logger.Debug("resumed", "at", now)
	s.emit()
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause(now time.Duration) {
	switch s.phase {
	case PhaseRunning:
		s.Pause(now)
	case PhasePaused:
		s.Resume(now)
	}
}

// Continue resumes after a lost life with a window of invincibility.
func (s *Session) Continue(now time.Duration) {
	if s.phase != PhaseLifeLost {
		return
	}
	grace := s.cfg.Session.ResumeGrace.D()
	s.phase = PhaseRunning
	s.invincibleUntil = now + grace + s.cfg.Session.InvincibilityWindow.D()
	s.spawner.Reset(now)
	s.pilot.Reset()
	s.sched.Start(now + grace)
	s.message("Get Ready!")
	s.logger.Debug("continued", "lives", s.lives, "invincible_until", s.invincibleUntil)
	s.emit()
}

// Restart discards the current run from any phase and starts a new one.
// Deferred tasks of the previous run are invalidated.
func (s *Session) Restart(now time.Duration) {
	s.now = max(s.now, now)
	s.reset(now)
	s.start(now)
}

// ToggleAutoPlay switches the autopilot on or off.
func (s *Session) ToggleAutoPlay() {
	s.autoPlay = !s.autoPlay
	s.pilot.Reset()
	if s.autoPlay {
		s.message("AI Auto-Jump Enabled")
	} else {
		s.message("AI Auto-Jump Disabled")
	}
	s.emit()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Phase:      s.phase,
		Score:      s.score,
		HighScore:  s.highScore,
		NewRecord:  s.newRecord,
		Lives:      s.lives,
		Level:      s.diff.Level,
		Tier:       s.diff.Tier,
		GameSpeed:  s.diff.GameSpeed,
		SpawnDelay: s.diff.SpawnDelay,
		AutoPlay:   s.autoPlay,
		Jump:       s.jumper.Phase(),
		Invincible: s.phase == PhaseRunning && s.now < s.invincibleUntil,
		Obstacles:  len(s.obstacles),
		Generation: s.generation,
		Mode:       s.mode,
	}
}

// Obstacles returns a copy of the live obstacles, oldest first.
func (s *Session) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// PlayerBox returns the player's current hitbox.
func (s *Session) PlayerBox() core.Rect {
	return s.collide.PlayerBox(s.jumper.Bottom(s.cfg.Field.Ground))
}

// Config returns the tuning the session runs with.
func (s *Session) Config() config.DinoConfig {
	return s.cfg
}

// Tip returns the hint chosen when the last game ended.
func (s *Session) Tip() string {
	return s.tip
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Now returns the latest time the session has observed.
func (s *Session) Now() time.Duration {
	return s.now
}

func (s *Session) reset(now time.Duration) {
	s.generation = s.sched.NewGeneration()
	s.clearObstacles()
	s.phase = PhaseNotStarted
	s.score = 0
	s.lives = s.cfg.Session.Lives
	s.diff = s.curve.Compute(0)
	s.newRecord = false
	s.invincibleUntil = 0
	s.pausedAt = 0
	s.tip = ""
	s.jumper.Reset()
	s.spawner.Reset(now)
	s.pilot.Reset()
}

func (s *Session) start(now time.Duration) {
	s.phase = PhaseRunning
	s.spawner.Reset(now)
	s.sched.Start(now + s.cfg.Session.StartDelay.D())
	s.message("Ready? Go!")
	s.logger.Info("run started", "mode", s.mode, "lives", s.lives, "auto", s.autoPlay, "generation", s.generation)
	s.emit()
}

func (s *Session) jump(now time.Duration) {
	switch s.jumper.Request(now) {
	case JumpStarted:
		s.sink.Cue(CueJump)
	case JumpDoubled:
		s.sink.Cue(CueDoubleJump)
	default:
		return
	}
	s.emit()
}

func (s *Session) scoreTick(at time.Duration) {
	if s.phase != PhaseRunning {
		return
	}
	s.now = max(s.now, at)
	s.score += s.curve.ScoreIncrement(s.diff.Level)

	if level := s.curve.LevelFor(s.score); level > s.diff.Level {
		s.diff = s.curve.ForLevel(level)
		s.sink.Cue(CueLevelUp)
		s.message(fmt.Sprintf("Level %d! %s", level, s.diff.Tier))
		s.logger.Debug("level up", "level", level, "tier", s.diff.Tier, "speed", s.diff.GameSpeed, "spawn_delay", s.diff.SpawnDelay)
	}
	s.emit()
}

func (s *Session) spawnTick(at time.Duration) {
	if s.phase != PhaseRunning {
		return
	}
	s.now = max(s.now, at)

	lastDouble, doubled := s.jumper.LastDoubleJump()
	reqs := s.spawner.MaybeSpawn(SpawnView{
		Now:            at,
		Difficulty:     s.diff,
		Last:           s.last(),
		LastDoubleJump: lastDouble,
		HasDoubleJump:  doubled,
	})

	gen := s.generation
	for _, r := range reqs {
		if r.Delay <= 0 {
			s.spawn(r.Kind, at)
			continue
		}
		kind := r.Kind
		s.sched.After(at+r.Delay, func(t time.Duration) {
			s.spawnMember(gen, kind, t)
		})
	}
}

// spawnMember creates a staggered group member if its run is still live and
// the spacing gate still passes.
func (s *Session) spawnMember(gen uint64, kind Kind, at time.Duration) {
	if gen != s.generation || s.phase != PhaseRunning {
		return
	}
	if !s.spawner.HasSpace(s.last(), s.cfg.Spawner.GroupGap) {
		s.logger.Debug("group member skipped", "kind", kind.Name)
		return
	}
	s.spawn(kind, at)
}

func (s *Session) spawn(kind Kind, at time.Duration) {
	s.nextID++
	o := Obstacle{
		ID:         s.nextID,
		Kind:       kind,
		Position:   -kind.Width,
		Speed:      kind.BaseDifficulty * s.diff.GameSpeed * s.cfg.Obstacles.SpeedScale,
		SpawnedAt:  at,
		Generation: s.generation,
	}
	s.obstacles = append(s.obstacles, o)
	s.sink.ObstacleCreated(o)
}

func (s *Session) simTick(at time.Duration) {
	if s.phase != PhaseRunning {
		return
	}
	s.now = max(s.now, at)
	landed := s.jumper.Update(at)

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.Position += o.Speed
		if o.OffScreen(s.cfg.Field) {
			s.sink.ObstacleRemoved(o.ID)
			continue
		}
		kept = append(kept, o)
	}
	s.obstacles = kept

	if at >= s.invincibleUntil {
		player := s.PlayerBox()
		for _, o := range s.obstacles {
			if s.collide.Check(player, o) {
				s.hit(o)
				return
			}
		}
	}

	if s.autoPlay {
		s.autopilot(at)
	}
	if landed {
		s.emit()
	}
}

func (s *Session) autopilot(at time.Duration) {
	presses := s.pilot.Plan(at, s.diff.Level, s.jumper.Phase(), s.obstacles)
	gen := s.generation
	for _, d := range presses {
		s.sched.After(at+d, func(t time.Duration) {
			if gen != s.generation || s.phase != PhaseRunning || !s.autoPlay {
				return
			}
			s.jump(t)
		})
	}
}

func (s *Session) hit(o Obstacle) {
	s.logger.Debug("collision", "kind", o.Kind.Name, "score", s.score, "jump", s.jumper.Phase())

	if s.cfg.Session.Lives > 0 && s.lives > 1 {
		s.lives--
		s.phase = PhaseLifeLost
		s.sched.Stop()
		s.sched.CancelTasks()
		s.clearObstacles()
		s.sink.Cue(CueLifeLost)
		if s.lives == 1 {
			s.message("Ouch! 1 life left")
		} else {
			s.message(fmt.Sprintf("Ouch! %d lives left", s.lives))
		}
		s.emit()
		return
	}

	if s.cfg.Session.Lives > 0 {
		s.lives = 0
	}
	s.gameOver()
}

func (s *Session) gameOver() {
	s.phase = PhaseOver
	s.sched.Stop()
	s.sched.CancelTasks()

	if s.score > s.highScore {
		s.highScore = s.score
		s.newRecord = true
		if err := s.store.SetHighScore(s.score); err != nil {
			s.logger.Error("could not save high score", "err", err, "score", s.score)
		}
		s.sink.Cue(CueHighScore)
	}
	s.sink.Cue(CueGameOver)

	if tips := s.cfg.Tips; len(tips) > 0 {
		s.tip = tips[s.tipRNG.Intn(len(tips))]
	}
	s.message("Game Over")
	s.logger.Info("game over", "mode", s.mode, "score", s.score, "level", s.diff.Level, "record", s.newRecord, "auto", s.autoPlay)
	s.emit()
}

func (s *Session) clearObstacles() {
	for _, o := range s.obstacles {
		s.sink.ObstacleRemoved(o.ID)
	}
	s.obstacles = s.obstacles[:0]
}

func (s *Session) last() *Obstacle {
	if len(s.obstacles) == 0 {
		return nil
	}
	return &s.obstacles[len(s.obstacles)-1]
}

func (s *Session) message(text string) {
	s.sink.Message(text, s.cfg.Session.MessageDuration.D())
}

func (s *Session) emit() {
	s.checkInvariants()
	s.sink.StateChanged(s.State())
}

// checkInvariants clamps values that must never go negative and logs when
// that happens.
func (s *Session) checkInvariants() {
	if s.score < 0 {
		s.logger.Warn("negative score clamped", "score", s.score)
		s.score = 0
	}
	if s.lives < 0 {
		s.logger.Warn("negative lives clamped", "lives", s.lives)
		s.lives = 0
	}
	if s.diff.Level < 1 {
		s.logger.Warn("level below one reset", "level", s.diff.Level)
		s.diff = s.curve.Compute(s.score)
	}
}
