package game

import "sync"

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// MemoryHighScore keeps the high score in memory.
type MemoryHighScore struct {
	mu    sync.Mutex
	value int
}

// NewMemoryHighScore creates a store seeded with value.
func NewMemoryHighScore(value int) *MemoryHighScore {
	return &MemoryHighScore{value: value}
}

func (m *MemoryHighScore) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryHighScore) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = score
	return nil
}
