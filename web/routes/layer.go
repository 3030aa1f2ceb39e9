package routes

import (
	"encoding/json"
	"net/http"
)

type layerRequest struct {
	Name string `json:"name"`
}

type layerResponse struct {
	Layer  string   `json:"layer"`
	Layers []string `json:"layers"`
}

// LayerHandle switches the shown layer.
func (s *ServerHandler) LayerHandle(w http.ResponseWriter, r *http.Request) {
	var req layerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "expected {\"name\": <layer>}", http.StatusBadRequest)

		return
	}

	if err := s.State.SelectLayer(req.Name); err != nil {
		http.Error(w, err.Error(), statusFor(err))

		return
	}

	writeJSON(w, http.StatusOK, layerResponse{Layer: s.State.Layer(), Layers: s.State.Layers()})
}
