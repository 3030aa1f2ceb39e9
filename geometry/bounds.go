package geometry

import (
	"errors"
	"fmt"

	"github.com/dasdy/keyview/model"
)

var (
	// ErrEmptyLayout is returned when there are no keys to measure.
	ErrEmptyLayout = errors.New("layout has no keys")
	// ErrDegenerateLayout is returned when the layout spans no width or height.
	ErrDegenerateLayout = errors.New("layout has no extent")
)

// Rect is an axis-aligned box in layout units.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

func (r Rect) Center() model.Point {
	return model.Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Bounds measures the unrotated key rectangles. Rotation is ignored, matching how the
// canvas fit is computed.
func Bounds(keys []model.KeyGeometry) (Rect, error) {
	if len(keys) == 0 {
		return Rect{}, ErrEmptyLayout
	}

	r := Rect{MinX: keys[0].X, MinY: keys[0].Y, MaxX: keys[0].X + keys[0].W, MaxY: keys[0].Y + keys[0].H}

	for _, k := range keys[1:] {
		r.MinX = min(r.MinX, k.X)
		r.MinY = min(r.MinY, k.Y)
		r.MaxX = max(r.MaxX, k.X+k.W)
		r.MaxY = max(r.MaxY, k.Y+k.H)
	}

	if r.Width() <= 0 || r.Height() <= 0 {
		return Rect{}, fmt.Errorf("%w: %vx%v", ErrDegenerateLayout, r.Width(), r.Height())
	}

	return r, nil
}
