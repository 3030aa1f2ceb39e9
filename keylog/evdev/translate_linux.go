//go:build linux

// Package evdev reads keyboard and mouse events from Linux input devices.
package evdev

import (
	"github.com/dasdy/keyview/model"
	"github.com/holoplot/go-evdev"
)

var mouseButtons = map[evdev.EvCode]int{
	evdev.BTN_LEFT:   1,
	evdev.BTN_MIDDLE: 2,
	evdev.BTN_RIGHT:  3,
}

// Translate converts a kernel input event. Key repeats, sync and motion events are
// dropped.
func Translate(e *evdev.InputEvent) (model.RawEvent, bool) {
	switch e.Type {
	case evdev.EV_KEY:
		if e.Value != 0 && e.Value != 1 {
			return model.RawEvent{}, false
		}

		pressed := e.Value == 1

		if button, ok := mouseButtons[e.Code]; ok {
			return model.RawEvent{Type: model.EventMouse, Button: button, Pressed: pressed}, true
		}

		name, ok := evdev.KEYToString[e.Code]
		if !ok {
			return model.RawEvent{}, false
		}

		return model.RawEvent{Type: model.EventKey, Key: name, Pressed: pressed}, true
	case evdev.EV_REL:
		if e.Code != evdev.REL_WHEEL || e.Value == 0 {
			return model.RawEvent{}, false
		}

		return model.RawEvent{Type: model.EventWheel, Delta: int(e.Value), Pressed: true}, true
	default:
		return model.RawEvent{}, false
	}
}
