// Package tui draws the viewer state in a terminal and feeds terminal input into it.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/keyview/logging"
	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/theme"
	"github.com/dasdy/keyview/viewer"
	"github.com/gdamore/tcell/v2"
)

// KeyHold is how long a key stays highlighted. Terminals report presses only, so
// every key press is shown as a tap.
const KeyHold = 150 * time.Millisecond

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

var logCtx = logging.PackageCtx("tui")

type redraw struct{}

type quit struct{}

// keyRelease ends a tap. Releases from an earlier generation of the same key are
// stale and ignored.
type keyRelease struct {
	key string
	gen uint64
}

type heldKey struct {
	timer *time.Timer
	gen   uint64
}

type Option func(*Viewer)

// WithTheme selects the palette.
func WithTheme(t theme.Theme) Option {
	return func(v *Viewer) {
		v.theme = t
	}
}

// WithScale sets a manual zoom in layout units per cell; zero fits the layout.
func WithScale(scale float64) Option {
	return func(v *Viewer) {
		v.scale = scale
	}
}

// WithKeyHold overrides KeyHold.
func WithKeyHold(d time.Duration) Option {
	return func(v *Viewer) {
		v.keyHold = d
	}
}

// Viewer owns a tcell screen. HandleEvent and Draw must be called from one
// goroutine; Run does that.
type Viewer struct {
	screen  tcell.Screen
	state   *viewer.State
	theme   theme.Theme
	scale   float64
	keyHold time.Duration

	buttons  tcell.ButtonMask
	held     map[string]*heldKey
	gen      uint64
	quitting bool
}

// New wraps an initialized screen. State changes from other goroutines, such as
// wheel releases or serial events, trigger a redraw.
func New(screen tcell.Screen, state *viewer.State, opts ...Option) *Viewer {
	v := &Viewer{
		screen:  screen,
		state:   state,
		theme:   theme.OrDefault(theme.Default),
		keyHold: KeyHold,
		held:    make(map[string]*heldKey),
	}

	for _, opt := range opts {
		opt(v)
	}

	state.OnChange(func(model.Transition) {
		// PostEvent fails only when the queue is full, and a redraw is already queued then
		_ = screen.PostEvent(tcell.NewEventInterrupt(redraw{}))
	})

	return v
}

func color(hex string) tcell.Color {
	return tcell.GetColor(hex)
}

func (v *Viewer) styles() (tcell.Style, tcell.Style, tcell.Style, tcell.Style) {
	base := tcell.StyleDefault.Background(color(v.theme.Background)).Foreground(color(v.theme.Text))
	key := tcell.StyleDefault.Background(color(v.theme.KeyFill)).Foreground(color(v.theme.Text))
	pressed := tcell.StyleDefault.Background(color(v.theme.PressedFill)).Foreground(color(v.theme.PressedText)).Bold(true)
	faded := key.Foreground(color(v.theme.Faded))

	return base, key, pressed, faded
}

func (v *Viewer) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Draw renders the current frame. The bottom row is a status line.
func (v *Viewer) Draw() {
	w, h := v.screen.Size()
	base, keyStyle, pressedStyle, fadedStyle := v.styles()

	v.screen.Fill(' ', base)

	frame, err := v.state.Render(float64(w), float64(h-1)*cellAspect, v.scale)
	if err != nil {
		v.print(0, 0, err.Error(), base)
	}

	for _, k := range frame.Keys {
		style := keyStyle

		switch {
		case k.Pressed:
			style = pressedStyle
		case k.Transparent:
			style = fadedStyle
		}

		text := " " + k.Label + " "
		x := int(k.Anchor.X) - len([]rune(text))/2
		y := int(k.Anchor.Y / cellAspect)

		v.print(x, y, text, style)
	}

	status := fmt.Sprintf("%s [%s]  ctrl-n: next layer  ctrl-c: quit", frame.Name, frame.Layer)
	v.print(0, h-1, status, base.Reverse(true))

	v.screen.Show()
}

func (v *Viewer) press(key string) {
	h, ok := v.held[key]
	if ok {
		// auto-repeat keeps the key down
		h.timer.Stop()
	} else {
		v.state.Apply(model.RawEvent{Type: model.EventKey, Key: key, Pressed: true})

		h = &heldKey{}
		v.held[key] = h
	}

	v.gen++
	h.gen = v.gen
	release := keyRelease{key: key, gen: h.gen}
	h.timer = time.AfterFunc(v.keyHold, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(release))
	})
}

func (v *Viewer) release(r keyRelease) {
	h, ok := v.held[r.key]
	if !ok || h.gen != r.gen {
		return
	}

	h.timer.Stop()
	delete(v.held, r.key)

	v.state.Apply(model.RawEvent{Type: model.EventKey, Key: r.key, Pressed: false})
}

func (v *Viewer) releaseAll() {
	for key, h := range v.held {
		h.timer.Stop()
		delete(v.held, key)
	}

	v.buttons = 0
	v.state.ReleaseAll()
}

func (v *Viewer) nextLayer() {
	layers := v.state.Layers()
	if len(layers) < 2 {
		return
	}

	current := v.state.Layer()
	next := layers[0]

	for i, name := range layers {
		if name == current {
			next = layers[(i+1)%len(layers)]

			break
		}
	}

	v.releaseAll()

	if err := v.state.SelectLayer(next); err != nil {
		slog.WarnContext(logCtx, "Could not switch layer", "layer", next, "error", err)
	}
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()

	if delta := WheelDelta(buttons); delta != 0 {
		v.state.Apply(model.RawEvent{Type: model.EventWheel, Delta: delta})
	}

	for _, b := range mouseButtons {
		was, is := v.buttons&b.mask != 0, buttons&b.mask != 0
		if was != is {
			v.state.Apply(model.RawEvent{Type: model.EventMouse, Button: b.button, Pressed: is})
		}
	}

	v.buttons = buttons
}

// HandleEvent applies one terminal event. It returns false once the viewer should
// quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyCtrlC:
			v.quitting = true
		case e.Key() == tcell.KeyCtrlN:
			v.nextLayer()
		default:
			for _, key := range RawKeys(e) {
				v.press(key)
			}
		}
	case *tcell.EventMouse:
		v.handleMouse(e)
	case *tcell.EventFocus:
		if !e.Focused {
			v.releaseAll()
		}
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case keyRelease:
			v.release(data)
		case quit:
			v.quitting = true
		}
	}

	return !v.quitting
}

// Run draws and handles events until ctrl-c or ctx is cancelled. The screen is
// finalized on return.
func (v *Viewer) Run(ctx context.Context) {
	defer v.screen.Fini()

	v.screen.EnableMouse()
	v.screen.EnableFocus()

	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(quit{}))
	})
	defer stop()

	v.Draw()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}

		if !v.HandleEvent(ev) {
			v.releaseAll()

			return
		}

		v.Draw()
	}
}
