package geometry_test

import (
	"math"
	"testing"

	"github.com/dasdy/keyview/geometry"
	"github.com/dasdy/keyview/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func assertPoint(t *testing.T, expected, actual model.Point) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, epsilon, "x of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, epsilon, "y of %v", actual)
}

func TestBounds(t *testing.T) {
	keys := []model.KeyGeometry{
		{X: 10, Y: 20, W: 30, H: 40},
		{X: -5, Y: 0, W: 10, H: 10},
		{X: 50, Y: 50, W: 20, H: 15, R: 45},
	}

	r, err := geometry.Bounds(keys)

	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{MinX: -5, MinY: 0, MaxX: 70, MaxY: 65}, r)
	assert.InDelta(t, 75.0, r.Width(), epsilon)
	assert.InDelta(t, 65.0, r.Height(), epsilon)
}

func TestBoundsErrors(t *testing.T) {
	_, err := geometry.Bounds(nil)
	require.ErrorIs(t, err, geometry.ErrEmptyLayout)

	_, err = geometry.Bounds([]model.KeyGeometry{{X: 1, Y: 1, W: 0, H: 0}})
	require.ErrorIs(t, err, geometry.ErrDegenerateLayout)
}

func TestCornersUnrotated(t *testing.T) {
	key := model.KeyGeometry{X: 10, Y: 20, W: 30, H: 40}

	p := geometry.Corners(key)

	assertPoint(t, model.Point{X: 10, Y: 20}, p[0])
	assertPoint(t, model.Point{X: 40, Y: 20}, p[1])
	assertPoint(t, model.Point{X: 40, Y: 60}, p[2])
	assertPoint(t, model.Point{X: 10, Y: 60}, p[3])
}

func TestCornersRotateAboutTopLeft(t *testing.T) {
	key := model.KeyGeometry{X: 10, Y: 20, W: 30, H: 10, R: 90}

	p := geometry.Corners(key)

	assertPoint(t, model.Point{X: 10, Y: 20}, p[0])
	assertPoint(t, model.Point{X: 10, Y: 50}, p[1])
	assertPoint(t, model.Point{X: 0, Y: 50}, p[2])
	assertPoint(t, model.Point{X: 0, Y: 20}, p[3])
}

func TestCornersNonSquareRotationIsNotAxisAligned(t *testing.T) {
	p := geometry.Corners(model.KeyGeometry{W: 20, H: 10, R: 30})

	assert.NotEqual(t, p[0].Y, p[1].Y)
	assert.NotEqual(t, p[1].X, p[2].X)
}

func TestKeyPolygonAppliesTransform(t *testing.T) {
	key := model.KeyGeometry{X: 1, Y: 2, W: 3, H: 4}
	transform := model.ViewTransform{Scale: 2, OffsetX: 10, OffsetY: -10}

	p, anchor := geometry.KeyPolygon(key, transform)

	assertPoint(t, model.Point{X: 12, Y: -6}, p[0])
	assertPoint(t, model.Point{X: 18, Y: 2}, p[2])
	assertPoint(t, model.Point{X: 15, Y: -2}, anchor)
}

func TestAnchorFollowsRotation(t *testing.T) {
	key := model.KeyGeometry{W: 20, H: 20, R: 180}

	_, anchor := geometry.KeyPolygon(key, model.ViewTransform{Scale: 1})

	assertPoint(t, model.Point{X: -10, Y: -10}, anchor)
}

func TestAutoFitCenters(t *testing.T) {
	testCases := []struct {
		name    string
		keys    []model.KeyGeometry
		canvasW float64
		canvasH float64
	}{
		{"wide layout", []model.KeyGeometry{{X: 0, Y: 0, W: 100, H: 10}}, 800, 600},
		{"tall layout", []model.KeyGeometry{{X: 0, Y: 0, W: 10, H: 100}}, 800, 600},
		{"offset layout", []model.KeyGeometry{{X: 300, Y: -50, W: 100, H: 100}, {X: 450, Y: 70, W: 50, H: 50}}, 1024, 768},
		{"canvas equals layout", []model.KeyGeometry{{X: 0, Y: 0, W: 640, H: 480}}, 640, 480},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bounds, err := geometry.Bounds(tc.keys)
			require.NoError(t, err)

			transform, err := geometry.AutoFit(bounds, tc.canvasW, tc.canvasH)
			require.NoError(t, err)
			assert.Positive(t, transform.Scale)

			minPt := transform.Apply(model.Point{X: bounds.MinX, Y: bounds.MinY})
			maxPt := transform.Apply(model.Point{X: bounds.MaxX, Y: bounds.MaxY})

			assert.InDelta(t, tc.canvasW/2, (minPt.X+maxPt.X)/2, 1)
			assert.InDelta(t, tc.canvasH/2, (minPt.Y+maxPt.Y)/2, 1)
			assert.LessOrEqual(t, maxPt.X-minPt.X, tc.canvasW*geometry.FitMargin+epsilon)
			assert.LessOrEqual(t, maxPt.Y-minPt.Y, tc.canvasH*geometry.FitMargin+epsilon)
		})
	}
}

func TestAutoFitScale(t *testing.T) {
	bounds := geometry.Rect{MinX: 0, MinY: 0, MaxX: 200, MaxY: 100}

	transform, err := geometry.AutoFit(bounds, 1000, 1000)

	require.NoError(t, err)
	assert.InDelta(t, 4.0, transform.Scale, epsilon)
}

func TestManual(t *testing.T) {
	bounds := geometry.Rect{MinX: 10, MinY: 20, MaxX: 110, MaxY: 70}

	transform, err := geometry.Manual(bounds, 400, 300, 0.5)

	require.NoError(t, err)
	assert.InDelta(t, 0.5, transform.Scale, epsilon)
	assert.InDelta(t, (400-100*0.5)/2-10*0.5, transform.OffsetX, epsilon)
	assert.InDelta(t, (300-50*0.5)/2-20*0.5, transform.OffsetY, epsilon)

	_, err = geometry.Manual(bounds, 400, 300, 0)
	require.Error(t, err)

	_, err = geometry.Manual(bounds, 400, 300, math.NaN())
	require.Error(t, err)
}

func TestParseScalePercent(t *testing.T) {
	testCases := []struct {
		in       string
		expected float64
		wantErr  bool
	}{
		{"80%", 0.8, false},
		{" 125 ", 1.25, false},
		{"25%", 0.25, false},
		{"0%", 0, true},
		{"big", 0, true},
		{"NaN", 0, true},
		{"Inf%", 0, true},
		{"-Inf", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := geometry.ParseScalePercent(tc.in)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, epsilon)
		})
	}
}

func TestProject(t *testing.T) {
	l := &model.Layout{
		Keys: []model.KeyGeometry{
			{X: 0, Y: 0, W: 10, H: 10},
			{X: 10, Y: 0, W: 10, H: 10},
			{X: 20, Y: 0, W: 10, H: 10},
		},
		Labels: []string{"A", "---"},
	}

	keys := geometry.Project(l, model.ViewTransform{Scale: 1}, map[string]bool{"A": true})

	require.Len(t, keys, 3)
	assert.True(t, keys[0].Pressed)
	assert.Equal(t, "A", keys[0].Label)
	assert.True(t, keys[1].Transparent)
	assert.False(t, keys[1].Pressed)
	assert.Equal(t, model.UnknownLabel, keys[2].Label)
	assert.Equal(t, 2, keys[2].Index)
	assertPoint(t, model.Point{X: 25, Y: 5}, keys[2].Anchor)
}

func TestProjectNilHighlight(t *testing.T) {
	l := &model.Layout{Keys: []model.KeyGeometry{{W: 1, H: 1}}}

	keys := geometry.Project(l, model.ViewTransform{Scale: 1}, nil)

	assert.False(t, keys[0].Pressed)
}

func TestView(t *testing.T) {
	l := &model.Layout{Keys: []model.KeyGeometry{{X: 0, Y: 0, W: 100, H: 50}}}

	fit, err := geometry.View(l, 1000, 1000, 0)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, fit.Scale, epsilon)

	manual, err := geometry.View(l, 1000, 1000, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, manual.Scale, epsilon)

	_, err = geometry.View(&model.Layout{}, 1000, 1000, 0)
	require.ErrorIs(t, err, geometry.ErrEmptyLayout)
}
