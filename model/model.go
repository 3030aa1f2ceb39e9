package model

const (
	// UnknownLabel marks a key whose label is missing or was not recognized.
	UnknownLabel = "?"
	// TransparentLabel is shown for keys that fall through to a lower layer.
	TransparentLabel = "---"
)

// KeyGeometry is one physical key. Rotation is in degrees about the key's own
// top-left corner. Rx and Ry are rotation pivot values some formats carry; they are
// kept for reference only.
type KeyGeometry struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
	R  float64 `json:"r"`
	Rx float64 `json:"rx,omitempty"`
	Ry float64 `json:"ry,omitempty"`
}

// Scaled multiplies position and size by f. Rotation is left untouched.
func (k KeyGeometry) Scaled(f float64) KeyGeometry {
	return KeyGeometry{
		X:  k.X * f,
		Y:  k.Y * f,
		W:  k.W * f,
		H:  k.H * f,
		R:  k.R,
		Rx: k.Rx * f,
		Ry: k.Ry * f,
	}
}

// Layer is a named label sequence from a keymap with several layers.
type Layer struct {
	Name   string   `json:"name"`
	Label  string   `json:"label,omitempty"`
	Labels []string `json:"labels"`
}

// Layout holds key geometry and labels as two independently parsed sequences.
// They are aligned by index only and may have different lengths.
type Layout struct {
	Name   string        `json:"name,omitempty"`
	Keys   []KeyGeometry `json:"keys"`
	Labels []string      `json:"labels"`
	Layers []Layer       `json:"layers,omitempty"`
}

// LabelAt returns the label for key i, or UnknownLabel when the label sequence is
// shorter than the key sequence.
func (l *Layout) LabelAt(i int) string {
	if i < 0 || i >= len(l.Labels) {
		return UnknownLabel
	}

	return l.Labels[i]
}

// Scaled returns a copy with every key rescaled by f.
func (l *Layout) Scaled(f float64) *Layout {
	keys := make([]KeyGeometry, len(l.Keys))
	for i, k := range l.Keys {
		keys[i] = k.Scaled(f)
	}

	return &Layout{Name: l.Name, Keys: keys, Labels: l.Labels, Layers: l.Layers}
}

// KeyLabels returns the set of labels that are attached to some key of the layout.
// Keys past the end of the label sequence contribute UnknownLabel.
func (l *Layout) KeyLabels() map[string]struct{} {
	result := make(map[string]struct{}, len(l.Keys))
	for i := range l.Keys {
		result[l.LabelAt(i)] = struct{}{}
	}

	return result
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon corners are ordered top-left, top-right, bottom-right, bottom-left in the
// key's unrotated frame.
type Polygon [4]Point

// Center is the arithmetic mean of the corners.
func (p Polygon) Center() Point {
	var c Point
	for _, pt := range p {
		c.X += pt.X
		c.Y += pt.Y
	}

	c.X /= float64(len(p))
	c.Y /= float64(len(p))

	return c
}

// ViewTransform maps layout units to canvas units: canvas = layout*Scale + Offset.
type ViewTransform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

func (t ViewTransform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// RenderedKey is what a renderer needs to draw one key.
type RenderedKey struct {
	Index       int     `json:"index"`
	Label       string  `json:"label"`
	Polygon     Polygon `json:"polygon"`
	Anchor      Point   `json:"anchor"`
	Pressed     bool    `json:"pressed"`
	Transparent bool    `json:"transparent"`
}
