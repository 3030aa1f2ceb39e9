package db

import (
	"time"

	"github.com/dasdy/keyview/model"
)

// Tracker counts labels held down together.
type Tracker interface {
	HandleTransition(tr model.Transition, when time.Time)
	GatherChords(label string) []model.Chord
}

// Storage is the event log of applied transitions.
type Storage interface {
	Store(tr model.Transition) error
	GatherAll() ([]model.LabelCount, error)
	Recent(limit int) ([]model.LoggedTransition, error)
	Close()
}
