package db

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dasdy/keyview/model"
)

// StaleAfter is how long a press may go without its release before it is no longer
// counted as held.
const StaleAfter = 10 * time.Second

type keyState struct {
	timeWhen time.Time
	pressed  bool
}

// ChordTracker counts sets of labels held down together. A chord is counted when a
// press brings the number of held labels to at least minChordLen.
type ChordTracker struct {
	chordCounts map[string]*model.Chord
	curState    map[string]*keyState
	minChordLen int
	stateLock   sync.RWMutex
}

func NewChordTracker(minChordLen int) *ChordTracker {
	return &ChordTracker{
		chordCounts: make(map[string]*model.Chord),
		curState:    make(map[string]*keyState),
		minChordLen: minChordLen,

		stateLock: sync.RWMutex{},
	}
}

func (c *ChordTracker) HandleTransition(tr model.Transition, when time.Time) {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	c.curState[tr.Label] = &keyState{pressed: tr.Pressed, timeWhen: when}

	if !tr.Pressed {
		return
	}

	held := make([]string, 0, len(c.curState))

	for label, s := range c.curState {
		if s.pressed && when.Sub(s.timeWhen) > StaleAfter {
			slog.Debug("ignoring stale key", "label", label, "staleness", when.Sub(s.timeWhen))

			s.pressed = false
		}

		if s.pressed {
			held = append(held, label)
		}
	}

	if len(held) < c.minChordLen {
		return
	}

	slices.Sort(held)
	id := strings.Join(held, "+")

	v, ok := c.chordCounts[id]
	if !ok {
		v = &model.Chord{Labels: held, Pressed: 0}
		c.chordCounts[id] = v
	}

	v.Pressed++

	slog.Debug("chord counting", "labels", held, "pressed", v.Pressed)
}

// GatherChords returns every chord containing label, or all chords when label is
// empty. Most frequent chords come first.
func (c *ChordTracker) GatherChords(label string) []model.Chord {
	c.stateLock.RLock()
	defer c.stateLock.RUnlock()

	result := make([]model.Chord, 0, len(c.chordCounts))

	for _, v := range c.chordCounts {
		if label == "" || slices.Contains(v.Labels, label) {
			result = append(result, model.Chord{Labels: slices.Clone(v.Labels), Pressed: v.Pressed})
		}
	}

	slices.SortFunc(result, func(a, b model.Chord) int {
		return cmp.Or(
			-cmp.Compare(a.Pressed, b.Pressed),
			cmp.Compare(len(a.Labels), len(b.Labels)),
			cmp.Compare(strings.Join(a.Labels, "+"), strings.Join(b.Labels, "+")),
		)
	})

	return result
}
