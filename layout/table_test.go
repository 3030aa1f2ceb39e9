package layout_test

import (
	"strings"
	"testing"

	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyPositions(t *testing.T) {
	t.Run("scales position and size", func(t *testing.T) {
		keys, err := layout.ParseKeyPositions(strings.NewReader("x,y,w,h,r\n10,20,30,40,15\n"), 0.5)

		require.NoError(t, err)
		assert.Equal(t, []model.KeyGeometry{{X: 5, Y: 10, W: 15, H: 20, R: 15}}, keys)
	})

	t.Run("columns in any order", func(t *testing.T) {
		text := "label, h, w, y, x\nA, 40, 30, 20, 10\n\nB, 1, 2, 3, 4\n"

		keys, err := layout.ParseKeyPositions(strings.NewReader(text), 1)

		require.NoError(t, err)
		assert.Equal(t, []model.KeyGeometry{
			{X: 10, Y: 20, W: 30, H: 40},
			{X: 4, Y: 3, W: 2, H: 1},
		}, keys)
	})

	t.Run("empty rotation means zero", func(t *testing.T) {
		keys, err := layout.ParseKeyPositions(strings.NewReader("x,y,w,h,r\n1,1,1,1,\n"), 1)

		require.NoError(t, err)
		assert.InDelta(t, 0.0, keys[0].R, 0)
	})

	testCases := []struct {
		name  string
		text  string
		field string
		line  int
	}{
		{"missing column", "x,y,w\n1,2,3\n", "h", 1},
		{"missing value", "x,y,w,h\n1,2,3,4\n1,2,,4\n", "w", 3},
		{"not a number", "x,y,w,h\n1,two,3,4\n", "y", 2},
		{"zero width", "x,y,w,h\n1,2,0,4\n", "w", 2},
		{"negative height", "x,y,w,h\n1,2,3,-4\n", "h", 2},
		{"bad rotation", "x,y,w,h,r\n1,2,3,4,left\n", "r", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := layout.ParseKeyPositions(strings.NewReader(tc.text), 1)

			var parseErr *layout.ParseError

			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, layout.FormatCSV, parseErr.Format)
			assert.Equal(t, tc.field, parseErr.Field)
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := layout.ParseKeyPositions(strings.NewReader(""), 1)

		var parseErr *layout.ParseError

		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("rejects non-positive scale", func(t *testing.T) {
		_, err := layout.ParseKeyPositions(strings.NewReader("x,y,w,h\n"), 0)

		require.Error(t, err)
	})
}

func TestParseKeymapTable(t *testing.T) {
	text := "LAYER1 A, B ,\n, kp C,\n\n\"LAYER2 D\"\n"

	labels, err := layout.ParseKeymapTable(strings.NewReader(text))

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, labels)
}

func TestParseKeymapTableEmpty(t *testing.T) {
	labels, err := layout.ParseKeymapTable(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, labels)
}
