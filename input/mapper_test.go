package input_test

import (
	"testing"

	"github.com/dasdy/keyview/input"
	"github.com/dasdy/keyview/model"
	"github.com/stretchr/testify/assert"
)

func TestKeyLabel(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"BACKSLASH", "YEN"},
		{`\`, "YEN"},
		{"a", "A"},
		{" ", "SPACE"},
		{"Escape", "ESC"},
		{"Control", "CTRL"},
		{"Meta", "WIN"},
		{"OS", "WIN"},
		{"ArrowLeft", "LEFT"},
		{"ArrowDown", "DOWN"},
		{"[", "{"},
		{"]", "}"},
		{";", "SEMI"},
		{":", "COLON"},
		{"'", "SQT"},
		{",", "COMMA"},
		{".", "DOT"},
		{"/", "SLASH"},
		{"KEY_LEFTALT", "ALT"},
		{"KEY_RIGHTSHIFT", "SHIFT"},
		{"KEY_ENTER", "ENTER"},
		{"KEY_BACKSLASH", "YEN"},
		{"KEY_A", "A"},
		{"Return", "ENTER"},
		{"LSHFT", "SHIFT"},
		{"N1", "1"},
		{"Tab", "TAB"},
		{"F5", "F5"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, input.KeyLabel(tc.raw))
		})
	}
}

func TestButtonLabel(t *testing.T) {
	assert.Equal(t, "LCLK", input.ButtonLabel(1))
	assert.Equal(t, "MCLK", input.ButtonLabel(2))
	assert.Equal(t, "RCLK", input.ButtonLabel(3))
	assert.Empty(t, input.ButtonLabel(4))
}

func TestWheelLabel(t *testing.T) {
	assert.Equal(t, "WHUP", input.WheelLabel(3))
	assert.Equal(t, "WHDN", input.WheelLabel(-1))
	assert.Empty(t, input.WheelLabel(0))
	assert.True(t, input.IsWheel("WHUP"))
	assert.False(t, input.IsWheel("LCLK"))
}

func TestMap(t *testing.T) {
	l := &model.Layout{
		Keys:   []model.KeyGeometry{{W: 1, H: 1}, {W: 1, H: 1}},
		Labels: []string{"LCTRL", "A"},
	}

	testCases := []struct {
		name     string
		ev       model.RawEvent
		expected model.Transition
		ok       bool
	}{
		{"key press", model.RawEvent{Type: model.EventKey, Key: "a", Pressed: true}, model.Transition{Label: "A", Pressed: true}, true},
		{"key release", model.RawEvent{Type: model.EventKey, Key: "Control"}, model.Transition{Label: "CTRL"}, true},
		{"empty key", model.RawEvent{Type: model.EventKey, Pressed: true}, model.Transition{}, false},
		{"left click", model.RawEvent{Type: model.EventMouse, Button: 1, Pressed: true}, model.Transition{Label: "LCLK", Pressed: true}, true},
		{"extra button", model.RawEvent{Type: model.EventMouse, Button: 8, Pressed: true}, model.Transition{}, false},
		{"wheel up is a press", model.RawEvent{Type: model.EventWheel, Delta: 1}, model.Transition{Label: "WHUP", Pressed: true}, true},
		{"wheel down", model.RawEvent{Type: model.EventWheel, Delta: -2}, model.Transition{Label: "WHDN", Pressed: true}, true},
		{"no wheel motion", model.RawEvent{Type: model.EventWheel}, model.Transition{}, false},
		{"position is normalized", model.RawEvent{Type: model.EventPosition, Position: 0, Pressed: true}, model.Transition{Label: "CTRL", Pressed: true}, true},
		{"position past labels", model.RawEvent{Type: model.EventPosition, Position: 5, Pressed: true}, model.Transition{}, false},
		{"unknown type", model.RawEvent{Type: "touch", Pressed: true}, model.Transition{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := input.Map(tc.ev, l)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMapPositionWithoutLayout(t *testing.T) {
	_, ok := input.Map(model.RawEvent{Type: model.EventPosition, Pressed: true}, nil)

	assert.False(t, ok)
}
