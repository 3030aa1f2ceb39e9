package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// LoadRequest is the body of POST /api/layout. Positions holds any supported
// position format; Keymap is optional.
type LoadRequest struct {
	Name      string  `json:"name"`
	Positions string  `json:"positions"`
	Keymap    string  `json:"keymap"`
	Scale     float64 `json:"scale"`
}

// LoadResponse summarizes a loaded layout.
type LoadResponse struct {
	Name   string   `json:"name"`
	Keys   int      `json:"keys"`
	Labels int      `json:"labels"`
	Layers []string `json:"layers"`
}

// LayoutHandle returns the rendered frame for the requested canvas as JSON.
func (s *ServerHandler) LayoutHandle(w http.ResponseWriter, r *http.Request) {
	v, err := s.parseView(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	frame, err := s.State.Render(v.width, v.height, v.scaleFactor())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))

		return
	}

	writeJSON(w, http.StatusOK, frame)
}

// LoadLayoutHandle parses and loads a layout. A rejected layout leaves the current
// one in place.
func (s *ServerHandler) LoadLayoutHandle(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "could not decode request: "+err.Error(), http.StatusBadRequest)

		return
	}

	if req.Scale == 0 {
		req.Scale = 1
	}

	if req.Name == "" {
		req.Name = "layout"
	}

	if err := s.State.LoadText(req.Name, req.Positions, req.Keymap, req.Scale); err != nil {
		slog.WarnContext(logCtx, "Rejected layout upload", "name", req.Name, "error", err)
		http.Error(w, err.Error(), statusFor(err))

		return
	}

	l := s.State.Layout()

	writeJSON(w, http.StatusOK, LoadResponse{
		Name:   l.Name,
		Keys:   len(l.Keys),
		Labels: len(l.Labels),
		Layers: s.State.Layers(),
	})
}
