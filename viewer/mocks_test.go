package viewer_test

import (
	"sync"
	"time"

	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/viewer"
)

// FakeTimer is a callback registered on a FakeScheduler.
type FakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *FakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true

	return wasActive
}

// FakeScheduler is a manual clock. Callbacks run inside Advance.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*FakeTimer
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) viewer.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &FakeTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)

	return t
}

// Advance moves the clock and runs every callback that became due.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d

	var due []*FakeTimer

	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Active counts callbacks that are neither stopped nor fired.
func (s *FakeScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			count++
		}
	}

	return count
}

// transitionRecorder collects transitions passed to OnChange.
type transitionRecorder struct {
	mu   sync.Mutex
	seen []model.Transition
}

func (r *transitionRecorder) record(tr model.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen = append(r.seen, tr)
}

func (r *transitionRecorder) all() []model.Transition {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]model.Transition(nil), r.seen...)
}

func testLayout() *model.Layout {
	return &model.Layout{
		Name: "test",
		Keys: []model.KeyGeometry{
			{X: 0, Y: 0, W: 100, H: 100},
			{X: 100, Y: 0, W: 100, H: 100},
			{X: 200, Y: 0, W: 100, H: 100},
			{X: 0, Y: 100, W: 100, H: 100},
			{X: 100, Y: 100, W: 100, H: 100},
		},
		Labels: []string{"A", "LCTRL", "WHUP", "LCLK"},
		Layers: []model.Layer{
			{Name: "default", Labels: []string{"A", "LCTRL", "WHUP", "LCLK"}},
			{Name: "lower", Labels: []string{"N1", "TRANS", "WHDN"}},
		},
	}
}
