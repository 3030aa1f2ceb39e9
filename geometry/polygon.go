package geometry

import (
	"math"

	"github.com/dasdy/keyview/model"
)

// Corners returns the key's corners rotated about its top-left corner, in layout
// units.
func Corners(key model.KeyGeometry) model.Polygon {
	theta := key.R * math.Pi / 180
	sin, cos := math.Sincos(theta)

	offsets := [4]model.Point{
		{X: 0, Y: 0},
		{X: key.W, Y: 0},
		{X: key.W, Y: key.H},
		{X: 0, Y: key.H},
	}

	var p model.Polygon
	for i, d := range offsets {
		p[i] = model.Point{
			X: key.X + d.X*cos - d.Y*sin,
			Y: key.Y + d.X*sin + d.Y*cos,
		}
	}

	return p
}

// KeyPolygon places the rotated key on the canvas. The anchor is the mean of the
// transformed corners.
func KeyPolygon(key model.KeyGeometry, t model.ViewTransform) (model.Polygon, model.Point) {
	p := Corners(key)
	for i := range p {
		p[i] = t.Apply(p[i])
	}

	return p, p.Center()
}

// Project renders every key of l. Keys without a label get model.UnknownLabel.
// pressed may be nil.
func Project(l *model.Layout, t model.ViewTransform, pressed map[string]bool) []model.RenderedKey {
	result := make([]model.RenderedKey, len(l.Keys))

	for i, k := range l.Keys {
		polygon, anchor := KeyPolygon(k, t)
		label := l.LabelAt(i)

		result[i] = model.RenderedKey{
			Index:       i,
			Label:       label,
			Polygon:     polygon,
			Anchor:      anchor,
			Pressed:     pressed[label],
			Transparent: label == model.TransparentLabel,
		}
	}

	return result
}

// View fits l to the canvas, or uses scale when it is positive.
func View(l *model.Layout, canvasW, canvasH, scale float64) (model.ViewTransform, error) {
	bounds, err := Bounds(l.Keys)
	if err != nil {
		return model.ViewTransform{}, err
	}

	if scale > 0 {
		return Manual(bounds, canvasW, canvasH, scale)
	}

	return AutoFit(bounds, canvasW, canvasH)
}
