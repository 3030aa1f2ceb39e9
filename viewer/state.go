// Package viewer holds a loaded layout together with the highlight state driven by
// input events.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dasdy/keyview/geometry"
	"github.com/dasdy/keyview/input"
	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/logging"
	"github.com/dasdy/keyview/model"
)

var (
	ErrNoLayout     = errors.New("no layout loaded")
	ErrUnknownLayer = errors.New("unknown layer")
)

var logCtx = logging.PackageCtx("viewer")

type pendingRelease struct {
	timer Timer
}

// ChangeFunc is called after a label changed state, outside of any lock.
type ChangeFunc func(model.Transition)

// State is the caller-owned viewer state. It is safe for concurrent use; wheel
// releases arrive on timer goroutines.
type State struct {
	layout    *model.Layout
	layer     string
	highlight map[string]bool
	pending   map[string]*pendingRelease
	scheduler Scheduler
	listeners []ChangeFunc
	closed    bool

	stateLock sync.RWMutex
}

type Option func(*State)

// WithScheduler replaces the timer source used for wheel releases.
func WithScheduler(s Scheduler) Option {
	return func(st *State) {
		st.scheduler = s
	}
}

func New(opts ...Option) *State {
	s := &State{
		highlight: make(map[string]bool),
		pending:   make(map[string]*pendingRelease),
		scheduler: RealScheduler(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// OnChange registers f to be called for every applied transition.
func (s *State) OnChange(f ChangeFunc) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.listeners = append(s.listeners, f)
}

// Load replaces the layout and resets every highlight to released, notifying
// listeners of each label that was pressed. Labels are normalized again so layouts
// built by hand match event labels.
func (s *State) Load(l *model.Layout) {
	layers := make([]model.Layer, len(l.Layers))
	for i, layer := range l.Layers {
		layers[i] = model.Layer{Name: layer.Name, Label: layer.Label, Labels: layout.NormalizeLabels(layer.Labels)}
	}

	loaded := &model.Layout{
		Name:   l.Name,
		Keys:   slices.Clone(l.Keys),
		Labels: layout.NormalizeLabels(l.Labels),
		Layers: layers,
	}

	s.stateLock.Lock()

	s.layout = loaded
	s.layer = ""

	if len(layers) > 0 {
		s.layer = layers[0].Name
	}

	released := s.resetLocked()
	tracked := len(s.highlight)
	listeners := slices.Clone(s.listeners)
	s.stateLock.Unlock()

	slog.InfoContext(logCtx, "Layout loaded",
		"name", loaded.Name,
		"keys", len(loaded.Keys),
		"labels", len(loaded.Labels),
		"tracked", tracked)

	notifyReleased(listeners, released)
}

// LoadText parses and loads a layout. On error the current layout and highlight
// state are kept.
func (s *State) LoadText(name, positionsText, keymapText string, scaleFactor float64) error {
	l, err := layout.LoadText(name, positionsText, keymapText, scaleFactor)
	if err != nil {
		slog.WarnContext(logCtx, "Layout rejected, keeping the current one", "name", name, "error", err)

		return err
	}

	s.Load(l)

	return nil
}

// resetLocked tracks every label of the current layout as released and drops pending
// wheel releases. It returns the labels that were pressed, sorted.
func (s *State) resetLocked() []string {
	released := s.releaseLocked()

	s.highlight = make(map[string]bool)

	if s.layout == nil {
		return released
	}

	for label := range s.layout.KeyLabels() {
		s.highlight[label] = false
	}

	return released
}

// releaseLocked marks every pressed label released and drops pending wheel
// releases. It returns the released labels, sorted.
func (s *State) releaseLocked() []string {
	var released []string

	for label, pressed := range s.highlight {
		if pressed {
			released = append(released, label)
			s.highlight[label] = false
		}
	}

	slices.Sort(released)

	for label, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, label)
	}

	return released
}

func notifyReleased(listeners []ChangeFunc, released []string) {
	for _, label := range released {
		for _, f := range listeners {
			f(model.Transition{Label: label})
		}
	}
}

// Layout returns the current layout, or nil.
func (s *State) Layout() *model.Layout {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return s.layout
}

// Apply maps a raw event and applies it. It reports whether the highlight state
// changed.
func (s *State) Apply(ev model.RawEvent) bool {
	s.stateLock.RLock()
	var labels input.Labels
	if s.layout != nil {
		labels = s.layout
	}
	s.stateLock.RUnlock()

	tr, ok := input.Map(ev, labels)
	if !ok {
		slog.DebugContext(logCtx, "Event ignored", "type", ev.Type, "key", ev.Key, "button", ev.Button)

		return false
	}

	changed := s.Set(tr)

	if input.IsWheel(tr.Label) {
		s.scheduleRelease(tr.Label)
	}

	return changed
}

// Set applies a transition for a canonical label. Labels the layout does not have
// are ignored.
func (s *State) Set(tr model.Transition) bool {
	s.stateLock.Lock()

	current, ok := s.highlight[tr.Label]
	if !ok || s.closed {
		s.stateLock.Unlock()
		slog.DebugContext(logCtx, "Label not on layout", "label", tr.Label)

		return false
	}

	if current == tr.Pressed {
		s.stateLock.Unlock()

		return false
	}

	s.highlight[tr.Label] = tr.Pressed
	listeners := slices.Clone(s.listeners)
	s.stateLock.Unlock()

	for _, f := range listeners {
		f(tr)
	}

	return true
}

// scheduleRelease releases a wheel label after WheelRelease. A newer wheel event for
// the same label replaces the pending release.
func (s *State) scheduleRelease(label string) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if _, ok := s.highlight[label]; !ok || s.closed {
		return
	}

	if p, ok := s.pending[label]; ok {
		p.timer.Stop()
	}

	p := &pendingRelease{}
	p.timer = s.scheduler.AfterFunc(WheelRelease, func() {
		s.fireRelease(label, p)
	})
	s.pending[label] = p
}

func (s *State) fireRelease(label string, p *pendingRelease) {
	s.stateLock.Lock()

	if s.pending[label] != p {
		// replaced or reset since scheduling
		s.stateLock.Unlock()

		return
	}

	delete(s.pending, label)
	s.stateLock.Unlock()

	s.Set(model.Transition{Label: label, Pressed: false})
}

// Pressed reports whether label is currently highlighted.
func (s *State) Pressed(label string) bool {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return s.highlight[label]
}

// Snapshot returns a copy of the highlight state.
func (s *State) Snapshot() map[string]bool {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return maps.Clone(s.highlight)
}

// ReleaseAll releases every pressed label, e.g. when the view loses focus.
func (s *State) ReleaseAll() {
	s.stateLock.Lock()
	released := s.releaseLocked()
	listeners := slices.Clone(s.listeners)
	s.stateLock.Unlock()

	notifyReleased(listeners, released)
}

// Layers lists the layer names of the current layout.
func (s *State) Layers() []string {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	if s.layout == nil {
		return nil
	}

	result := make([]string, len(s.layout.Layers))
	for i, l := range s.layout.Layers {
		result[i] = l.Name
	}

	return result
}

// Layer returns the name of the active layer.
func (s *State) Layer() string {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return s.layer
}

// SelectLayer shows the labels of the named layer and resets the highlight state,
// notifying listeners of each label that was pressed.
func (s *State) SelectLayer(name string) error {
	s.stateLock.Lock()

	if s.layout == nil {
		s.stateLock.Unlock()

		return ErrNoLayout
	}

	idx := slices.IndexFunc(s.layout.Layers, func(l model.Layer) bool { return l.Name == name })
	if idx < 0 {
		s.stateLock.Unlock()

		return fmt.Errorf("%w: %s", ErrUnknownLayer, name)
	}

	l := s.layout.Layers[idx]
	s.layout = &model.Layout{Name: s.layout.Name, Keys: s.layout.Keys, Labels: l.Labels, Layers: s.layout.Layers}
	s.layer = name
	released := s.resetLocked()
	listeners := slices.Clone(s.listeners)
	s.stateLock.Unlock()

	slog.InfoContext(logCtx, "Layer selected", "layer", name)
	notifyReleased(listeners, released)

	return nil
}

// Frame is everything needed to draw the current state once.
type Frame struct {
	Name      string              `json:"name"`
	Layer     string              `json:"layer,omitempty"`
	Transform model.ViewTransform `json:"transform"`
	Keys      []model.RenderedKey `json:"keys"`
}

// Render projects the layout onto a canvas. A positive scale selects manual zoom,
// otherwise the layout is fitted to the canvas.
func (s *State) Render(canvasW, canvasH, scale float64) (Frame, error) {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	if s.layout == nil {
		return Frame{}, ErrNoLayout
	}

	transform, err := geometry.View(s.layout, canvasW, canvasH, scale)
	if err != nil {
		return Frame{}, fmt.Errorf("could not fit layout %s: %w", s.layout.Name, err)
	}

	return Frame{
		Name:      s.layout.Name,
		Layer:     s.layer,
		Transform: transform,
		Keys:      geometry.Project(s.layout, transform, s.highlight),
	}, nil
}

// Close cancels pending wheel releases. Later events are ignored.
func (s *State) Close() {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	for label, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, label)
	}

	s.closed = true
}
