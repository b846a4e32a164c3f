package sound

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/dino-runner/internal/game"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestOscillatorWaves(t *testing.T) {
	tests := []struct {
		name string
		wave WaveType
		freq float64
	}{
		{"sine", WaveSine, 440},
		{"square", WaveSquare, 220},
		{"saw", WaveSaw, 110},
		{"noise", WaveNoise, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			osc := NewOscillator(tc.freq, 50*time.Millisecond, tc.wave, testRate)
			samples := drain(t, osc)

			if got, want := len(samples), testRate.N(50*time.Millisecond); got != want {
				t.Errorf("streamed %d samples, expected %d", got, want)
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d = %v, expected equal channels in [-1, 1]", i, s)
				}
				if tc.wave == WaveSquare && math.Abs(s[0]) != 1 {
					t.Fatalf("square sample %d = %f", i, s[0])
				}
			}
			if osc.Err() != nil {
				t.Errorf("unexpected error: %v", osc.Err())
			}
		})
	}
}

func TestEnvelopeRamps(t *testing.T) {
	d := 100 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, testRate) // constant +1
	env := NewEnvelope(osc, d, 10*time.Millisecond, 20*time.Millisecond, testRate)

	samples := drain(t, env)
	if len(samples) != testRate.N(d) {
		t.Fatalf("streamed %d samples, expected %d", len(samples), testRate.N(d))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, expected silence at the attack start", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if mid != 1 {
		t.Errorf("sustain sample = %f, expected 1", mid)
	}
	last := samples[len(samples)-1][0]
	if last <= 0 || last > 0.01 {
		t.Errorf("last sample = %f, expected near zero", last)
	}
}

func TestEnvelopeLongerThanSource(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, testRate)
	env := NewEnvelope(osc, time.Second, time.Millisecond, time.Millisecond, testRate)

	if got := len(drain(t, env)); got != testRate.N(10*time.Millisecond) {
		t.Errorf("envelope streamed %d samples past its source", got)
	}
}

func TestCueSoundsAreFinite(t *testing.T) {
	cues := []game.Cue{
		game.CueJump, game.CueDoubleJump, game.CueLevelUp, game.CueLifeLost,
		game.CueGameOver, game.CueHighScore, game.CuePause, game.CueResume,
	}

	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			s := CueSound(c, testRate, DefaultVolume)
			if s == nil {
				t.Fatal("no sound")
			}
			samples := drain(t, s)

			want := testRate.N(CueDuration(c))
			if diff := len(samples) - want; diff < -len(cueNotes[c]) || diff > len(cueNotes[c]) {
				t.Errorf("cue streamed %d samples, expected about %d", len(samples), want)
			}

			loud := false
			for _, v := range samples {
				if math.Abs(v[0]) > 1 {
					t.Fatalf("sample %v clips", v)
				}
				if math.Abs(v[0]) > 0.01 {
					loud = true
				}
			}
			if !loud {
				t.Error("cue is silent")
			}
		})
	}
}

func TestCueSoundUnknownAndSilent(t *testing.T) {
	if s := CueSound(game.Cue(99), testRate, 1); s != nil {
		t.Error("unknown cue should have no sound")
	}
	if CueDuration(game.Cue(99)) != 0 {
		t.Error("unknown cue should have no duration")
	}

	for _, v := range drain(t, CueSound(game.CueJump, testRate, 0)) {
		if v[0] != 0 {
			t.Fatalf("zero volume produced %v", v)
		}
	}
}

func TestCueDurationOrdering(t *testing.T) {
	if CueDuration(game.CueJump) >= CueDuration(game.CueGameOver) {
		t.Error("jump should be shorter than game over")
	}
}

func TestPlayerDropsCuesUntilInitialized(t *testing.T) {
	p := NewPlayer(log.New(io.Discard))

	var sink game.Sink = p
	sink.Cue(game.CueJump)
	sink.StateChanged(game.State{})
	p.SetVolume(3)
	p.SetMuted(true)
	p.Close()

	if p.Played() != 0 {
		t.Errorf("uninitialized player played %d cues", p.Played())
	}
	if p.volume != 1 {
		t.Errorf("volume = %f, expected clamp to 1", p.volume)
	}
}
