package storage

// HighScoreKey returns the high_scores key used for a mode.
func HighScoreKey(mode string) string {
	return "dinoHighScore:" + mode
}

// HighScoreKeeper binds a Store to one high-score key so a session can
// persist its best score without knowing about the database.
type HighScoreKeeper struct {
	store *Store
	key   string
}

// NewHighScoreKeeper creates a keeper for the mode's high score.
func NewHighScoreKeeper(store *Store, mode string) *HighScoreKeeper {
	return &HighScoreKeeper{store: store, key: HighScoreKey(mode)}
}

// HighScore returns the stored best score.
func (k *HighScoreKeeper) HighScore() (int, error) {
	return k.store.HighScore(k.key)
}

// SetHighScore stores score if it beats the stored value.
func (k *HighScoreKeeper) SetHighScore(score int) error {
	return k.store.SetHighScore(k.key, score)
}
