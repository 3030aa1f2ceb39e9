package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/theme"
)

// PolygonPoints formats a polygon for an SVG points attribute.
func PolygonPoints(p model.Polygon) string {
	parts := make([]string, len(p))
	for i, pt := range p {
		parts[i] = fmt.Sprintf("%.2f,%.2f", pt.X, pt.Y)
	}

	return strings.Join(parts, " ")
}

func pixels(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func coord(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func viewBox(w, h float64) string {
	return "0 0 " + pixels(w) + " " + pixels(h)
}

func keyFill(k *model.RenderedKey, t theme.Theme) string {
	if k.Pressed {
		return t.PressedFill
	}

	return t.KeyFill
}

// keyTextColor fades transparent keys unless they are pressed.
func keyTextColor(k *model.RenderedKey, t theme.Theme) string {
	switch {
	case k.Pressed:
		return t.PressedText
	case k.Transparent:
		return t.Faded
	default:
		return t.Text
	}
}

// fontSize shrinks long labels so they stay inside the key.
func fontSize(label string) int {
	switch n := len(label); {
	case n <= 2:
		return 16
	case n <= 5:
		return 12
	default:
		return 9
	}
}

func barStyle(count, maxVal int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width: %d%%;", barWidth(count, maxVal)))
}

// pageStyle is the stylesheet for t. Theme colours are fixed hex values.
func pageStyle(t theme.Theme) string {
	return fmt.Sprintf("<style>body { background: %s; color: %s; font-family: monospace; } "+
		".bar div { background: %s; height: 0.8em; } .recent [data-pressed=true] { font-weight: bold; }</style>",
		templ.EscapeString(t.Background), templ.EscapeString(t.Text), templ.EscapeString(t.PressedFill))
}

func pageScript() string {
	return "<script>" + script + "</script>"
}

// barWidth is the share of the key log bar for count, in percent.
func barWidth(count, maxVal int) int {
	if maxVal <= 0 {
		return 0
	}

	return count * 100 / maxVal
}
