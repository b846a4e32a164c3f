package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/game"
)

var _ game.HighScoreStore = (*HighScoreKeeper)(nil)

func TestHighScoreKey(t *testing.T) {
	if got := HighScoreKey("arcade"); got != "dinoHighScore:arcade" {
		t.Errorf("HighScoreKey() = %q", got)
	}
}

func TestKeeperPersistsSessionHighScore(t *testing.T) {
	store := openTestStore(t)
	store.SetHighScore(HighScoreKey("classic"), 7)

	keeper := NewHighScoreKeeper(store, "classic")
	s, err := game.NewModeSession("classic", config.DefaultDinoConfig(), game.Options{Seed: 4, Store: keeper})
	if err != nil {
		t.Fatalf("NewModeSession() failed: %v", err)
	}
	if got := s.State().HighScore; got != 7 {
		t.Fatalf("session loaded high score %d, expected 7", got)
	}

	s.Jump(0)
	for at := time.Duration(0); at <= 2*time.Minute && s.Phase() != game.PhaseOver; at += 10 * time.Millisecond {
		s.Advance(at)
	}
	st := s.State()
	if st.Phase != game.PhaseOver {
		t.Fatalf("run did not end: %+v", st)
	}

	saved, err := store.HighScore(HighScoreKey("classic"))
	if err != nil {
		t.Fatal(err)
	}
	if saved != max(st.Score, 7) {
		t.Errorf("stored high score = %d, expected %d", saved, max(st.Score, 7))
	}

	// Other modes are untouched.
	if other, _ := store.HighScore(HighScoreKey("arcade")); other != 0 {
		t.Errorf("arcade high score = %d, expected 0", other)
	}
}
