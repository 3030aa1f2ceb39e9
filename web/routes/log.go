package routes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dasdy/keyview/model"
)

// LogResponse is the key log: press counts, recent transitions and, when a label
// is requested, the chords it was part of.
type LogResponse struct {
	Counts []model.LabelCount       `json:"counts"`
	Recent []model.LoggedTransition `json:"recent"`
	Chords []model.Chord            `json:"chords,omitempty"`
}

// LogHandle serves the key log as JSON.
func (s *ServerHandler) LogHandle(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, "key log is disabled", http.StatusNotFound)

		return
	}

	limit := RecentLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)

			return
		}

		limit = v
	}

	counts, err := s.Storage.GatherAll()
	if err != nil {
		slog.ErrorContext(logCtx, "Failed to get stats", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	recent, err := s.Storage.Recent(limit)
	if err != nil {
		slog.ErrorContext(logCtx, "Failed to get recent transitions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	resp := LogResponse{Counts: counts, Recent: recent}

	if label := r.URL.Query().Get("label"); label != "" && s.Tracker != nil {
		resp.Chords = s.Tracker.GatherChords(label)
	}

	writeJSON(w, http.StatusOK, resp)
}
