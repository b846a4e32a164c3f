package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
)

func newJump() *JumpController {
	return NewJumpController(config.DefaultDinoConfig().Jump)
}

func TestJumpFromGround(t *testing.T) {
	j := newJump()

	if got := j.Request(0); got != JumpStarted {
		t.Fatalf("Request() = %v, expected JumpStarted", got)
	}
	if j.Phase() != Rising {
		t.Errorf("Phase() = %v, expected rising", j.Phase())
	}
	if got := j.Bottom(5); got != 125 {
		t.Errorf("Bottom() = %v, expected 125", got)
	}

	if j.Update(499 * ms) {
		t.Error("should still be rising before the rise duration")
	}
	if !j.Update(500 * ms) {
		t.Error("should land at the rise duration")
	}
	if j.Phase() != Grounded || j.Bottom(5) != 5 {
		t.Errorf("after landing phase=%v bottom=%v", j.Phase(), j.Bottom(5))
	}
}

func TestDoubleJumpWindow(t *testing.T) {
	tests := []struct {
		name     string
		second   time.Duration // after the first press
		expected JumpResult
		phase    JumpPhase
	}{
		{"inside window", 100 * ms, JumpDoubled, DoubleRising},
		{"window edge", 300 * ms, JumpDoubled, DoubleRising},
		{"outside window", 400 * ms, JumpIgnored, Rising},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := newJump()
			j.Request(0)

			got := j.Request(tc.second)
			if got != tc.expected {
				t.Errorf("second Request() = %v, expected %v", got, tc.expected)
			}
			if j.Phase() != tc.phase {
				t.Errorf("Phase() = %v, expected %v", j.Phase(), tc.phase)
			}
		})
	}
}

func TestDoubleJumpReplacesSingleTimeout(t *testing.T) {
	j := newJump()
	j.Request(0)
	j.Request(100 * ms)

	if at, ok := j.LastDoubleJump(); !ok || at != 100*ms {
		t.Errorf("LastDoubleJump() = %v, %v", at, ok)
	}
	if got := j.Bottom(5); got != 195 {
		t.Errorf("Bottom() = %v, expected 195", got)
	}

	// The single jump would have landed at 500ms.
	j.Update(600 * ms)
	if j.Phase() != DoubleRising {
		t.Errorf("Phase() at 600ms = %v, expected double-rising", j.Phase())
	}
	j.Update(700 * ms)
	if j.Phase() != Grounded {
		t.Errorf("Phase() at 700ms = %v, expected grounded", j.Phase())
	}
}

func TestRequestWhileDoubleRisingIgnored(t *testing.T) {
	j := newJump()
	j.Request(0)
	j.Request(50 * ms)

	if got := j.Request(100 * ms); got != JumpIgnored {
		t.Errorf("Request() = %v, expected JumpIgnored", got)
	}
	if at, _ := j.LastDoubleJump(); at != 50*ms {
		t.Errorf("ignored request must not move LastDoubleJump, got %v", at)
	}
}

func TestZeroWindowAcceptsAnyTimeWhileRising(t *testing.T) {
	cfg := config.DefaultDinoConfig().Jump
	cfg.DoubleWindow = 0
	j := NewJumpController(cfg)
	j.Request(0)

	if got := j.Request(450 * ms); got != JumpDoubled {
		t.Errorf("Request() = %v, expected JumpDoubled", got)
	}
}

func TestRequestAfterLandingStartsNewJump(t *testing.T) {
	j := newJump()
	j.Request(0)

	if got := j.Request(600 * ms); got != JumpStarted {
		t.Errorf("Request() after landing = %v, expected JumpStarted", got)
	}
}

func TestJumpReset(t *testing.T) {
	j := newJump()
	j.Request(0)
	j.Request(10 * ms)
	j.Reset()

	if j.Phase() != Grounded {
		t.Errorf("Phase() = %v, expected grounded", j.Phase())
	}
	if _, ok := j.LastDoubleJump(); ok {
		t.Error("Reset should forget double jump history")
	}
}

func TestJumpShift(t *testing.T) {
	j := newJump()
	j.Request(0)
	j.Shift(time.Second)

	if j.Update(1400 * ms) {
		t.Fatal("shifted jump landed early")
	}
	if got := j.Request(1200 * ms); got != JumpDoubled {
		t.Errorf("Request() = %v, expected the double window to move with the shift", got)
	}

	g := newJump()
	g.Shift(time.Second)
	if got := g.Request(0); got != JumpStarted {
		t.Errorf("grounded controller should ignore Shift, Request() = %v", got)
	}
}
