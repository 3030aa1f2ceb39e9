package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dasdy/keyview/geometry"
	"github.com/dasdy/keyview/theme"
	"github.com/dasdy/keyview/viewer"
	cs "github.com/dasdy/keyview/web/components"
)

// BuildRenderContext renders the current state onto a canvas of the given size.
// scale is in percent; zero fits the layout to the canvas.
func (s *ServerHandler) BuildRenderContext(width, height float64, scale int, th theme.Theme) (cs.RenderContext, error) {
	frame, err := s.State.Render(width, height, float64(scale)/100)
	if err != nil {
		return cs.RenderContext{}, err
	}

	return cs.RenderContext{
		Title:        frame.Name,
		Layer:        frame.Layer,
		Layers:       s.State.Layers(),
		Width:        width,
		Height:       height,
		Keys:         frame.Keys,
		Theme:        th,
		Scale:        scale,
		ScaleChoices: geometry.ScaleChoices,
	}, nil
}

// addKeyLog fills the key log part of the context from storage, if there is one.
func (s *ServerHandler) addKeyLog(c *cs.RenderContext) error {
	if s.Storage == nil {
		return nil
	}

	counts, err := s.Storage.GatherAll()
	if err != nil {
		return err
	}

	recent, err := s.Storage.Recent(RecentLimit)
	if err != nil {
		return err
	}

	c.Counts = counts
	c.Recent = recent

	return nil
}

// IndexHandle serves the viewer page. A layer query parameter switches the shown
// layer first.
func (s *ServerHandler) IndexHandle(w http.ResponseWriter, r *http.Request) {
	slog.InfoContext(logCtx, "Handling viewer page request")

	v, err := s.parseView(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if layer := r.URL.Query().Get("layer"); layer != "" && layer != s.State.Layer() {
		if err := s.State.SelectLayer(layer); err != nil {
			http.Error(w, err.Error(), statusFor(err))

			return
		}
	}

	renderContext, err := s.BuildRenderContext(v.width, v.height, v.scale, v.theme)

	switch {
	case errors.Is(err, viewer.ErrNoLayout):
		renderContext = cs.RenderContext{
			Title:   "keyview",
			Width:   v.width,
			Height:  v.height,
			Theme:   v.theme,
			Message: "No layout loaded. POST one to /api/layout.",
		}
	case err != nil:
		slog.ErrorContext(logCtx, "Could not render layout", "error", err)
		http.Error(w, err.Error(), statusFor(err))

		return
	}

	if err := s.addKeyLog(&renderContext); err != nil {
		slog.ErrorContext(logCtx, "Failed to get key log", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.DebugContext(logCtx, "Built render context", "keys", len(renderContext.Keys))

	renderOrFail(cs.Page(&renderContext), w)
}

// KeyboardHandle serves only the SVG keyboard, for redraws after input.
func (s *ServerHandler) KeyboardHandle(w http.ResponseWriter, r *http.Request) {
	v, err := s.parseView(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	renderContext, err := s.BuildRenderContext(v.width, v.height, v.scale, v.theme)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))

		return
	}

	renderOrFail(cs.Keyboard(&renderContext), w)
}
