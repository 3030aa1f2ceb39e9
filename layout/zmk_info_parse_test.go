package layout_test

import (
	"testing"

	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONLayout(t *testing.T) {
	t.Run("reads layout_US with defaults", func(t *testing.T) {
		text := `{
			"layouts": {
				"layout_ISO": {"layout": [{"x": 9}]},
				"layout_US": {"layout": [
					{"x": 0, "y": 0},
					{"x": 1.5, "y": 0.25, "w": 2, "h": 0, "r": 15, "rx": 2, "ry": 1}
				]}
			}
		}`

		keys, err := layout.ParseJSONLayout(text)

		require.NoError(t, err)
		assert.Equal(t, []model.KeyGeometry{
			{X: 0, Y: 0, W: 100, H: 100},
			{X: 150, Y: 25, W: 200, H: 100, R: 15, Rx: 200, Ry: 100},
		}, keys)
	})

	t.Run("falls back to first layout", func(t *testing.T) {
		text := `{"layouts": {"LAYOUT_split": {"layout": [{"x": 2, "y": 3}]}}}`

		keys, err := layout.ParseJSONLayout(text)

		require.NoError(t, err)
		assert.Equal(t, []model.KeyGeometry{{X: 200, Y: 300, W: 100, H: 100}}, keys)
	})

	t.Run("no layouts is not an error", func(t *testing.T) {
		keys, err := layout.ParseJSONLayout(`{"name": "board"}`)

		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := layout.ParseJSONLayout("x,y,w,h\n1,2,3,4")

		require.ErrorIs(t, err, layout.ErrNotJSON)
	})

	t.Run("wrong field type", func(t *testing.T) {
		text := `{"layouts": {"layout_US": {"layout": [{"x": 1}, {"x": "left"}]}}}`

		_, err := layout.ParseJSONLayout(text)

		var parseErr *layout.ParseError

		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, layout.FormatJSON, parseErr.Format)
		assert.Equal(t, "x", parseErr.Field)
		assert.Equal(t, 2, parseErr.Line)
	})

	t.Run("negative width", func(t *testing.T) {
		text := `{"layouts": {"layout_US": {"layout": [{"w": -1}]}}}`

		_, err := layout.ParseJSONLayout(text)

		var parseErr *layout.ParseError

		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "w", parseErr.Field)
	})

	t.Run("layout is not an array", func(t *testing.T) {
		_, err := layout.ParseJSONLayout(`{"layouts": {"layout_US": {"layout": 3}}}`)

		var parseErr *layout.ParseError

		require.ErrorAs(t, err, &parseErr)
	})
}
