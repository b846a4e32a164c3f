package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
)

type modeJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AutoPlay    bool   `json:"auto_play"`
}

type runJSON struct {
	RunID      string    `json:"run_id"`
	Mode       string    `json:"mode"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	AutoPlayed bool      `json:"auto_played"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type statsJSON struct {
	Mode       string     `json:"mode"`
	Runs       int        `json:"runs"`
	BestScore  int        `json:"best_score"`
	BestLevel  int        `json:"best_level"`
	AvgScore   float64    `json:"avg_score"`
	HighScore  int        `json:"high_score"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	modes := registry.List()
	out := make([]modeJSON, 0, len(modes))
	for _, m := range modes {
		out = append(out, modeJSON{ID: m.ID, Title: m.Title, Description: m.Description, AutoPlay: m.AutoPlay})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.modeVar(w, r)
	if !ok {
		return
	}

	limit := defaultScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxScoreLimit)
	}

	var runs []storage.Run
	var err error
	switch r.URL.Query().Get("order") {
	case "", "best":
		runs, err = s.store.TopRuns(mode, limit)
	case "recent":
		runs, err = s.store.RecentRuns(mode, limit)
	default:
		writeError(w, http.StatusBadRequest, "order must be best or recent")
		return
	}
	if err != nil {
		s.logger.Error("could not load runs", "mode", mode, "err", err)
		writeError(w, http.StatusInternalServerError, "could not load runs")
		return
	}

	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunJSON(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage is disabled")
		return
	}

	id := mux.Vars(r)["id"]
	run, err := s.store.RunByID(id)
	if err != nil {
		s.logger.Error("could not load run", "run", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not load run")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "no run "+strconv.Quote(id))
		return
	}
	writeJSON(w, http.StatusOK, toRunJSON(*run))
}

func toRunJSON(run storage.Run) runJSON {
	return runJSON{
		RunID:      run.RunID,
		Mode:       run.Mode,
		Score:      run.Score,
		Level:      run.Level,
		AutoPlayed: run.AutoPlayed,
		DurationMS: run.Duration.Milliseconds(),
		CreatedAt:  run.CreatedAt,
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.modeVar(w, r)
	if !ok {
		return
	}

	stats, err := s.store.GetModeStats(mode)
	if err != nil {
		s.logger.Error("could not load stats", "mode", mode, "err", err)
		writeError(w, http.StatusInternalServerError, "could not load stats")
		return
	}

	out := statsJSON{
		Mode:      mode,
		Runs:      stats.RunsCount,
		BestScore: stats.BestScore,
		BestLevel: stats.BestLevel,
		AvgScore:  stats.AvgScore,
	}
	if !stats.LastPlayed.IsZero() {
		out.LastPlayed = &stats.LastPlayed
	}
	// The stored high score also counts runs that were not recorded
	if hs, err := s.store.HighScore(storage.HighScoreKey(mode)); err == nil {
		out.HighScore = max(hs, stats.BestScore)
	} else {
		out.HighScore = stats.BestScore
	}
	writeJSON(w, http.StatusOK, out)
}

// modeVar validates the {mode} path variable and the store.
func (s *Server) modeVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage is disabled")
		return "", false
	}
	mode := mux.Vars(r)["mode"]
	if !registry.Exists(mode) {
		writeError(w, http.StatusNotFound, "unknown mode "+strconv.Quote(mode))
		return "", false
	}
	return mode, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorJSON{Error: msg})
}
