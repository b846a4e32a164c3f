package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/game"
	"github.com/vovakirdan/dino-runner/internal/registry"
)

const (
	writeWait = 5 * time.Second
	// overHold keeps the game-over picture on screen before the demo restarts
	overHold = 2 * time.Second
)

// Box is a world rectangle, y up from the bottom of the field.
type Box struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

func boxOf(r core.Rect) Box {
	return Box{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// ObstacleFrame is one obstacle in a demo frame.
type ObstacleFrame struct {
	ID         int    `json:"id" msgpack:"id"`
	Kind       string `json:"kind" msgpack:"kind"`
	DoubleJump bool   `json:"double_jump" msgpack:"double_jump"`
	Box        Box    `json:"box" msgpack:"box"`
}

// DemoFrame is one message of the demo stream.
type DemoFrame struct {
	TimeMS    int64           `json:"time_ms" msgpack:"time_ms"`
	Mode      string          `json:"mode" msgpack:"mode"`
	Phase     string          `json:"phase" msgpack:"phase"`
	Score     int             `json:"score" msgpack:"score"`
	HighScore int             `json:"high_score" msgpack:"high_score"`
	Level     int             `json:"level" msgpack:"level"`
	Tier      string          `json:"tier" msgpack:"tier"`
	Lives     int             `json:"lives" msgpack:"lives"`
	Speed     float64         `json:"speed" msgpack:"speed"`
	Jump      string          `json:"jump" msgpack:"jump"`
	Message   string          `json:"message,omitempty" msgpack:"message,omitempty"`
	Player    Box             `json:"player" msgpack:"player"`
	Obstacles []ObstacleFrame `json:"obstacles" msgpack:"obstacles"`
}

// bannerSink remembers the latest session message.
type bannerSink struct {
	game.NopSink
	text  string
	until time.Duration
	clock core.Clock
}

func (b *bannerSink) Message(text string, d time.Duration) {
	b.text = text
	b.until = b.clock.Now() + d
}

func (b *bannerSink) current() string {
	if b.clock.Now() >= b.until {
		return ""
	}
	return b.text
}

// demoRun drives an auto-played session on a simulated clock.
type demoRun struct {
	session *game.Session
	clock   *core.ManualClock
	banner  *bannerSink
	step    time.Duration
	overAt  time.Duration
}

func (s *Server) newDemoRun(mode string, seed int64) (*demoRun, error) {
	clock := &core.ManualClock{}
	banner := &bannerSink{clock: clock}
	session, err := game.NewModeSession(mode, s.cfg.Game, game.Options{
		Seed:     seed,
		AutoPlay: true,
		Sink:     banner,
		Logger:   s.logger.WithPrefix("demo"),
	})
	if err != nil {
		return nil, err
	}
	session.Handle(core.InputEvent{Action: core.ActionJump, At: 0})
	return &demoRun{session: session, clock: clock, banner: banner, step: s.cfg.FrameInterval, overAt: -1}, nil
}

// next advances one step and returns the resulting frame.
// Lost lives are continued and finished runs restart after a short hold.
func (d *demoRun) next() DemoFrame {
	now := d.clock.Advance(d.step)

	switch d.session.Phase() {
	case game.PhaseLifeLost:
		d.session.Handle(core.InputEvent{Action: core.ActionContinue, At: now})
	case game.PhaseOver:
		if d.overAt < 0 {
			d.overAt = now
		} else if now-d.overAt >= overHold {
			d.session.Handle(core.InputEvent{Action: core.ActionRestart, At: now})
			d.overAt = -1
		}
	}
	d.session.Advance(now)

	return d.frame()
}

func (d *demoRun) frame() DemoFrame {
	st := d.session.State()
	field := d.session.Config().Field

	obstacles := d.session.Obstacles()
	out := make([]ObstacleFrame, 0, len(obstacles))
	for _, o := range obstacles {
		out = append(out, ObstacleFrame{
			ID:         o.ID,
			Kind:       o.Kind.Name,
			DoubleJump: o.Kind.RequiresDoubleJump,
			Box:        boxOf(o.Hitbox(field.Width, field.Ground)),
		})
	}

	return DemoFrame{
		TimeMS:    d.session.Now().Milliseconds(),
		Mode:      st.Mode,
		Phase:     st.Phase.String(),
		Score:     st.Score,
		HighScore: st.HighScore,
		Level:     st.Level,
		Tier:      st.Tier,
		Lives:     st.Lives,
		Speed:     st.GameSpeed,
		Jump:      st.Jump.String(),
		Message:   d.banner.current(),
		Player:    boxOf(d.session.PlayerBox()),
		Obstacles: out,
	}
}

// encodeFrame returns the websocket message type and payload for a frame.
type encodeFrame func(DemoFrame) (int, []byte, error)

func encodeJSON(f DemoFrame) (int, []byte, error) {
	data, err := json.Marshal(f)
	return websocket.TextMessage, data, err
}

func encodeMsgpack(f DemoFrame) (int, []byte, error) {
	data, err := msgpack.Marshal(&f)
	return websocket.BinaryMessage, data, err
}

// handleDemo upgrades to a websocket and streams frames until the client
// goes away. ?mode= picks the mode, ?seed= fixes the run and
// ?format=msgpack switches to binary frames.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	var encode encodeFrame
	switch r.URL.Query().Get("format") {
	case "", "json":
		encode = encodeJSON
	case "msgpack":
		encode = encodeMsgpack
	default:
		writeError(w, http.StatusBadRequest, "format must be json or msgpack")
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = game.DefaultMode
	}
	if !registry.Exists(mode) {
		writeError(w, http.StatusNotFound, "unknown mode")
		return
	}

	seed := time.Now().UnixNano()
	if v := r.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		seed = n
	}

	run, err := s.newDemoRun(mode, seed)
	if err != nil {
		s.logger.Error("could not start demo", "mode", mode, "err", err)
		writeError(w, http.StatusInternalServerError, "could not start demo")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("remote", r.RemoteAddr, "mode", mode)
	logger.Info("demo started")

	// The read pump only watches for the client closing the socket
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.FrameInterval)
	defer ticker.Stop()

	frames := 0
	for {
		select {
		case <-done:
			logger.Info("demo closed by client", "frames", frames)
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			kind, data, err := encode(run.next())
			if err != nil {
				logger.Error("could not encode demo frame", "err", err)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(kind, data); err != nil {
				logger.Debug("demo write failed", "err", err, "frames", frames)
				return
			}
			frames++

			if s.cfg.MaxDemoTime > 0 && run.session.Now() >= s.cfg.MaxDemoTime {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "demo finished")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				logger.Info("demo finished", "frames", frames)
				return
			}
		}
	}
}
