//go:generate go tool templ generate -f page.templ

package components

import (
	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/theme"
)

// RenderContext is everything the page components draw from.
type RenderContext struct {
	Title  string
	Layer  string
	Layers []string
	Width  float64
	Height float64
	Keys   []model.RenderedKey
	Theme  theme.Theme
	// Scale is the manual zoom in percent; zero means fitted to the canvas.
	Scale        int
	ScaleChoices []int
	Counts       []model.LabelCount
	Recent       []model.LoggedTransition
	Message      string
}

// MaxCount is the largest press count in the key log, used to size the bars.
func (c *RenderContext) MaxCount() int {
	maxVal := 0
	for _, lc := range c.Counts {
		maxVal = max(maxVal, lc.Count)
	}

	return maxVal
}
