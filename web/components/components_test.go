package components_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/theme"
	"github.com/dasdy/keyview/web/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y float64) model.Polygon {
	return model.Polygon{{X: x, Y: y}, {X: x + 10, Y: y}, {X: x + 10, Y: y + 10}, {X: x, Y: y + 10}}
}

func renderContext() *components.RenderContext {
	return &components.RenderContext{
		Title:  "board",
		Layer:  "lower",
		Layers: []string{"default", "lower"},
		Width:  200,
		Height: 100,
		Theme:  theme.OrDefault("dark"),
		Keys: []model.RenderedKey{
			{Index: 0, Label: "A", Polygon: square(0, 0), Anchor: model.Point{X: 5, Y: 5}},
			{Index: 1, Label: "<&>", Polygon: square(10, 0), Anchor: model.Point{X: 15, Y: 5}, Pressed: true},
			{Index: 2, Label: "---", Polygon: square(20, 0), Anchor: model.Point{X: 25, Y: 5}, Transparent: true},
		},
		Scale:        80,
		ScaleChoices: []int{50, 80, 100},
		Counts:       []model.LabelCount{{Label: "A", Count: 4}, {Label: "B", Count: 2}},
		Recent: []model.LoggedTransition{
			{Label: "A", Pressed: true, Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestPolygonPoints(t *testing.T) {
	got := components.PolygonPoints(square(1.5, 2))

	assert.Equal(t, "1.50,2.00 11.50,2.00 11.50,12.00 1.50,12.00", got)
}

func TestKeyboard(t *testing.T) {
	var buf bytes.Buffer

	c := renderContext()
	require.NoError(t, components.Keyboard(c).Render(context.Background(), &buf))

	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg id="keyboard"`))
	assert.Equal(t, 3, strings.Count(out, "<polygon"))
	assert.Contains(t, out, "&lt;&amp;&gt;")
	assert.NotContains(t, out, "<&>")
	assert.Contains(t, out, `data-index="1" data-pressed="true"`)
	assert.Contains(t, out, `fill="`+c.Theme.PressedFill+`"`)
	assert.Contains(t, out, `fill="`+c.Theme.Faded+`"`)
}

func TestKeyLog(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, components.KeyLog(renderContext()).Render(context.Background(), &buf))

	out := buf.String()

	assert.Contains(t, out, "KEY LOG")
	assert.Contains(t, out, `width: 100%`)
	assert.Contains(t, out, `width: 50%`)
	assert.Contains(t, out, `<li data-pressed="true"><time>10:00:00.000</time> A</li>`)
}

func TestPage(t *testing.T) {
	var buf bytes.Buffer

	c := renderContext()
	c.Message = "loaded"

	require.NoError(t, components.Page(c).Render(context.Background(), &buf))

	out := buf.String()

	assert.Contains(t, out, "<title>board</title>")
	assert.Contains(t, out, `<option value="lower" selected>lower</option>`)
	assert.Contains(t, out, `<option value="80" selected>80%</option>`)
	assert.Contains(t, out, `<option value="dark" selected>dark</option>`)
	assert.Contains(t, out, `data-scale="80"`)
	assert.Contains(t, out, `<p class="message">loaded</p>`)
	assert.Contains(t, out, "/api/events")
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "background: "+c.Theme.Background)
}

func TestMaxCount(t *testing.T) {
	assert.Equal(t, 4, renderContext().MaxCount())
	assert.Equal(t, 0, (&components.RenderContext{}).MaxCount())
}
