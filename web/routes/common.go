package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/dasdy/keyview/db"
	"github.com/dasdy/keyview/geometry"
	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/logging"
	"github.com/dasdy/keyview/theme"
	"github.com/dasdy/keyview/viewer"
)

const (
	DefaultCanvasWidth  = 1200
	DefaultCanvasHeight = 600
	// RecentLimit is the number of transitions shown in the key log.
	RecentLimit = 20
)

var logCtx = logging.PackageCtx("web")

// ServerHandler holds all dependencies needed for the web server handlers.
// Storage and Tracker are optional.
type ServerHandler struct {
	State   *viewer.State
	Storage db.Storage
	Tracker db.Tracker
	Theme   theme.Theme

	CanvasWidth  float64
	CanvasHeight float64
	// Scale is the default manual scale in percent; zero fits the layout to the canvas.
	Scale int
}

// SafeRenderTemplate safely renders a templ component to an http.ResponseWriter.
func SafeRenderTemplate(component templ.Component, w http.ResponseWriter) error {
	// Do not write to w because it implies 200 status
	var buf bytes.Buffer

	err := component.Render(context.Background(), &buf)
	if err != nil {
		return fmt.Errorf("could not render template: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(logCtx, "Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}

func renderOrFail(component templ.Component, w http.ResponseWriter) {
	if err := SafeRenderTemplate(component, w); err != nil {
		slog.ErrorContext(logCtx, "Could not render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(logCtx, "Failed to write response", "error", err)
	}
}

// statusFor maps errors from loading and rendering layouts to HTTP status codes.
func statusFor(err error) int {
	var parseErr *layout.ParseError

	switch {
	case errors.As(err, &parseErr), errors.Is(err, layout.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, viewer.ErrNoLayout), errors.Is(err, viewer.ErrUnknownLayer):
		return http.StatusNotFound
	case errors.Is(err, geometry.ErrEmptyLayout), errors.Is(err, geometry.ErrDegenerateLayout):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// view holds the canvas parameters of one request.
type view struct {
	width  float64
	height float64
	// scale in percent, zero for fitted.
	scale int
	theme theme.Theme
}

func positiveFloat(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, raw)
	}

	return v, nil
}

// parseView reads width, height, scale and theme query parameters, falling back to
// the handler defaults.
func (s *ServerHandler) parseView(r *http.Request) (view, error) {
	v := view{
		width:  s.CanvasWidth,
		height: s.CanvasHeight,
		scale:  s.Scale,
		theme:  s.Theme,
	}

	if v.width <= 0 {
		v.width = DefaultCanvasWidth
	}

	if v.height <= 0 {
		v.height = DefaultCanvasHeight
	}

	if v.theme.Name == "" {
		v.theme = theme.OrDefault(theme.Default)
	}

	var err error

	if v.width, err = positiveFloat(r, "width", v.width); err != nil {
		return view{}, err
	}

	if v.height, err = positiveFloat(r, "height", v.height); err != nil {
		return view{}, err
	}

	if raw, ok := r.URL.Query()["scale"]; ok {
		switch raw[0] {
		case "", "0", "fit":
			v.scale = 0
		default:
			f, err := geometry.ParseScalePercent(raw[0])
			if err != nil {
				return view{}, err
			}

			v.scale = int(f*100 + 0.5)
		}
	}

	if name := r.URL.Query().Get("theme"); name != "" {
		t, ok := theme.Lookup(name)
		if !ok {
			return view{}, fmt.Errorf("unknown theme %q", name)
		}

		v.theme = t
	}

	return v, nil
}

func (v view) scaleFactor() float64 {
	return float64(v.scale) / 100
}
