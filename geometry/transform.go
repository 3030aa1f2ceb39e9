package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dasdy/keyview/model"
)

// FitMargin is the share of the canvas the layout may use when fitted; the rest is
// split evenly between both sides.
const FitMargin = 0.8

// ScaleChoices are the manual zoom levels offered to users, in percent.
var ScaleChoices = []int{25, 50, 80, 100, 125, 150}

// AutoFit scales bounds to fit FitMargin of the canvas and centers the result.
func AutoFit(bounds Rect, canvasW, canvasH float64) (model.ViewTransform, error) {
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return model.ViewTransform{}, ErrDegenerateLayout
	}

	scale := min(canvasW*FitMargin/bounds.Width(), canvasH*FitMargin/bounds.Height())

	return Manual(bounds, canvasW, canvasH, scale)
}

// Manual uses a fixed scale and centers the scaled layout on the canvas.
func Manual(bounds Rect, canvasW, canvasH, scale float64) (model.ViewTransform, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return model.ViewTransform{}, fmt.Errorf("invalid scale %v", scale)
	}

	return model.ViewTransform{
		Scale:   scale,
		OffsetX: (canvasW-bounds.Width()*scale)/2 - bounds.MinX*scale,
		OffsetY: (canvasH-bounds.Height()*scale)/2 - bounds.MinY*scale,
	}, nil
}

// ParseScalePercent reads values such as "80%" or "125" as a scale factor.
func ParseScalePercent(s string) (float64, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(s), "%")

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse scale %q: %w", s, err)
	}

	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("scale %q must be a positive number", s)
	}

	return v / 100, nil
}
