package model

import "time"

type EventType string

const (
	EventKey      EventType = "key"
	EventMouse    EventType = "mouse"
	EventWheel    EventType = "wheel"
	EventPosition EventType = "position"
)

// RawEvent is an input event as reported by a front-end or device, before it is
// mapped to a canonical label.
type RawEvent struct {
	Type EventType `json:"type"`
	// Key is the platform key identifier for EventKey.
	Key string `json:"key,omitempty"`
	// Button is the mouse button index for EventMouse (1 left, 2 middle, 3 right).
	Button int `json:"button,omitempty"`
	// Delta is the wheel motion for EventWheel; positive scrolls up.
	Delta int `json:"delta,omitempty"`
	// Position is the key index for EventPosition.
	Position int  `json:"position,omitempty"`
	Pressed  bool `json:"pressed"`
}

// Transition is a highlight change for a canonical label.
type Transition struct {
	Label   string
	Pressed bool
}

// KeyPosition is the index of a key in a layout.
type KeyPosition int

// KeyEvent is a key matrix event as logged by ZMK firmware.
type KeyEvent struct {
	Row      int
	Col      int
	Position KeyPosition
	Pressed  bool
}

// ToRaw converts a firmware key event into a position event.
func (e *KeyEvent) ToRaw() RawEvent {
	return RawEvent{Type: EventPosition, Position: int(e.Position), Pressed: e.Pressed}
}

// LoggedTransition is a transition recorded in the event log.
type LoggedTransition struct {
	Label     string    `json:"label"`
	Pressed   bool      `json:"pressed"`
	Timestamp time.Time `json:"timestamp"`
}

// LabelCount is the number of presses recorded for a label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Chord is a set of labels held down together, with the number of times it was
// completed.
type Chord struct {
	Labels  []string `json:"labels"`
	Pressed int      `json:"pressed"`
}
