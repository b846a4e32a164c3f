// Package sound plays short synthesized cues for game events through beep.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/dino-runner/internal/game"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator that ends after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

// NewEnvelope shapes s with an attack ramp and a release ramp ending at duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: total - rel,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= e.releaseStart {
			vol = float64(e.total-e.position) / float64(e.release)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one step of a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave WaveType
	gain float64
}

// cueNotes lists the melody played for each cue.
var cueNotes = map[game.Cue][]note{
	game.CueJump: {
		{523.25, 60 * time.Millisecond, WaveSquare, 0.25},
	},
	game.CueDoubleJump: {
		{659.25, 50 * time.Millisecond, WaveSquare, 0.25},
		{880.00, 70 * time.Millisecond, WaveSquare, 0.25},
	},
	game.CueLevelUp: {
		{523.25, 90 * time.Millisecond, WaveSine, 0.5},
		{659.25, 90 * time.Millisecond, WaveSine, 0.5},
		{783.99, 140 * time.Millisecond, WaveSine, 0.5},
	},
	game.CueLifeLost: {
		{150, 120 * time.Millisecond, WaveSaw, 0.35},
		{0, 130 * time.Millisecond, WaveNoise, 0.15},
	},
	game.CueGameOver: {
		{392.00, 150 * time.Millisecond, WaveSaw, 0.3},
		{329.63, 150 * time.Millisecond, WaveSaw, 0.3},
		{261.63, 300 * time.Millisecond, WaveSaw, 0.3},
	},
	game.CueHighScore: {
		{783.99, 100 * time.Millisecond, WaveSine, 0.5},
		{1046.50, 220 * time.Millisecond, WaveSine, 0.5},
	},
	game.CuePause: {
		{329.63, 50 * time.Millisecond, WaveSquare, 0.15},
	},
	game.CueResume: {
		{440.00, 50 * time.Millisecond, WaveSquare, 0.15},
	},
}

// CueDuration returns how long a cue plays, or 0 for unknown cues.
func CueDuration(c game.Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// CueSound builds the streamer for a cue at the given master volume.
// Unknown cues return nil.
func CueSound(c game.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.dur, n.wave, rate)
		release := n.dur / 2
		shaped := NewEnvelope(osc, n.dur, 5*time.Millisecond, release, rate)
		parts = append(parts, newVolume(shaped, n.gain*volume))
	}
	return beep.Seq(parts...)
}
