package layout_test

import (
	"testing"

	"github.com/dasdy/keyview/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const qmkSource = `
#include QMK_KEYBOARD_H

const uint16_t PROGMEM keymaps[][MATRIX_ROWS][MATRIX_COLS] = {
    [_QWERTY] = LAYOUT(
        KC_Q,    KC_W,     LCTL(KC_C), KC_MINS,
        _______, KC_TRNS,  MO(1),      KC_SPC
    ),
    [_LOWER] = LAYOUT_split_3x5(
        KC_1, LSFT(KC_QUOT)
    )
};
`

func TestParseQMKKeymap(t *testing.T) {
	require.True(t, layout.IsQMKKeymap(qmkSource))

	layers := layout.ParseQMKKeymap(qmkSource)

	require.Len(t, layers, 2)
	assert.Equal(t, "QWERTY", layers[0].Name)
	assert.Equal(t, []string{"Q", "W", "CTL+C", "MINUS", "TRANS", "TRANS", "MO(1)", "SPC"}, layers[0].Labels)
	assert.Equal(t, "LOWER", layers[1].Name)
	assert.Equal(t, []string{"1", "SFT+SQT"}, layers[1].Labels)
}

func TestIsQMKKeymap(t *testing.T) {
	assert.False(t, layout.IsQMKKeymap("bindings = <\n&kp A\n>;"))
}
