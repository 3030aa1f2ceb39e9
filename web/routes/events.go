package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"

	"github.com/dasdy/keyview/model"
)

// EventsResponse reports how many events changed the highlight state and which
// labels are pressed afterwards.
type EventsResponse struct {
	Changed int      `json:"changed"`
	Pressed []string `json:"pressed"`
}

// decodeEvents accepts a single event object or an array of them.
func decodeEvents(r io.Reader) ([]model.RawEvent, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)

	if len(body) > 0 && body[0] == '[' {
		var events []model.RawEvent
		if err := json.Unmarshal(body, &events); err != nil {
			return nil, err
		}

		return events, nil
	}

	var ev model.RawEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}

	return []model.RawEvent{ev}, nil
}

func (s *ServerHandler) pressedLabels() []string {
	pressed := make([]string, 0)

	for label, down := range s.State.Snapshot() {
		if down {
			pressed = append(pressed, label)
		}
	}

	slices.Sort(pressed)

	return pressed
}

// EventsHandle applies raw input events in order.
func (s *ServerHandler) EventsHandle(w http.ResponseWriter, r *http.Request) {
	events, err := decodeEvents(r.Body)
	if err != nil {
		http.Error(w, "could not decode events: "+err.Error(), http.StatusBadRequest)

		return
	}

	changed := 0

	for _, ev := range events {
		if s.State.Apply(ev) {
			changed++
		}
	}

	writeJSON(w, http.StatusOK, EventsResponse{Changed: changed, Pressed: s.pressedLabels()})
}

// ReleaseHandle releases every pressed label; browsers call it when the page loses
// focus.
func (s *ServerHandler) ReleaseHandle(w http.ResponseWriter, _ *http.Request) {
	s.State.ReleaseAll()

	writeJSON(w, http.StatusOK, EventsResponse{Pressed: s.pressedLabels()})
}
