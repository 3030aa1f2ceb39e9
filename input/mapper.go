// Package input turns raw keyboard, mouse, wheel and firmware position events into
// canonical label transitions.
package input

import (
	"strings"

	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/model"
)

const (
	WheelUp   = "WHUP"
	WheelDown = "WHDN"
)

// substitutions maps upper-cased platform key names (browser, evdev without the KEY_
// prefix, terminal) to keymap vocabulary. Unlisted names pass through.
var substitutions = map[string]string{
	" ":      "SPACE",
	"ESCAPE": "ESC",

	"CONTROL":      "CTRL",
	"CONTROLLEFT":  "CTRL",
	"CONTROLRIGHT": "CTRL",
	"LEFTCTRL":     "CTRL",
	"RIGHTCTRL":    "CTRL",
	"ALTLEFT":      "ALT",
	"ALTRIGHT":     "ALT",
	"ALTGRAPH":     "ALT",
	"LEFTALT":      "ALT",
	"RIGHTALT":     "ALT",
	"SHIFTLEFT":    "SHIFT",
	"SHIFTRIGHT":   "SHIFT",
	"LEFTSHIFT":    "SHIFT",
	"RIGHTSHIFT":   "SHIFT",
	"META":         "WIN",
	"OS":           "WIN",
	"METALEFT":     "WIN",
	"METARIGHT":    "WIN",
	"LEFTMETA":     "WIN",
	"RIGHTMETA":    "WIN",

	"RETURN":    "ENTER",
	"KPENTER":   "ENTER",
	"BACKSLASH": "YEN",
	`\`:         "YEN",

	"[":          "{",
	"]":          "}",
	"LEFTBRACE":  "{",
	"RIGHTBRACE": "}",
	";":          "SEMI",
	"SEMICOLON":  "SEMI",
	":":          "COLON",
	"'":          "SQT",
	"APOSTROPHE": "SQT",
	",":          "COMMA",
	".":          "DOT",
	"/":          "SLASH",

	"ARROWLEFT":  "LEFT",
	"ARROWUP":    "UP",
	"ARROWRIGHT": "RIGHT",
	"ARROWDOWN":  "DOWN",
}

var buttons = map[int]string{
	1: "LCLK",
	2: "MCLK",
	3: "RCLK",
}

// KeyLabel maps a platform key identifier to a canonical label. An empty result
// means the key should be ignored.
func KeyLabel(raw string) string {
	key := strings.ToUpper(raw)
	if key != " " {
		key = strings.TrimSpace(key)
	}

	key = strings.TrimPrefix(key, "KEY_")

	if v, ok := substitutions[key]; ok {
		key = v
	}

	return layout.NormalizeLabel(key)
}

// ButtonLabel maps mouse buttons 1 to 3 to click labels.
func ButtonLabel(button int) string {
	return buttons[button]
}

// WheelLabel maps the sign of a wheel delta to WHUP or WHDN.
func WheelLabel(delta int) string {
	switch {
	case delta > 0:
		return WheelUp
	case delta < 0:
		return WheelDown
	default:
		return ""
	}
}

// Labels resolves key positions to labels.
type Labels interface {
	LabelAt(i int) string
}

// Map converts ev into a transition. ok is false for events that map to nothing.
// Wheel events are always presses; releasing them is up to the caller.
func Map(ev model.RawEvent, labels Labels) (model.Transition, bool) {
	var label string

	pressed := ev.Pressed

	switch ev.Type {
	case model.EventKey:
		label = KeyLabel(ev.Key)
	case model.EventMouse:
		label = ButtonLabel(ev.Button)
	case model.EventWheel:
		label = WheelLabel(ev.Delta)
		pressed = true
	case model.EventPosition:
		if labels == nil {
			return model.Transition{}, false
		}

		label = layout.NormalizeLabel(labels.LabelAt(ev.Position))
		if label == model.UnknownLabel {
			return model.Transition{}, false
		}
	}

	if label == "" {
		return model.Transition{}, false
	}

	return model.Transition{Label: label, Pressed: pressed}, true
}

// IsWheel reports whether label is released automatically.
func IsWheel(label string) bool {
	return label == WheelUp || label == WheelDown
}
