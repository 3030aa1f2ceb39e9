//go:build !linux

// Package evdev reads keyboard and mouse events from Linux input devices.
package evdev

import (
	"context"
	"errors"

	"github.com/dasdy/keyview/model"
)

var ErrUnsupported = errors.New("input devices can only be read on linux")

func Open(context.Context, string) (<-chan model.RawEvent, error) {
	return nil, ErrUnsupported
}

func FindKeyboards() ([]string, error) {
	return nil, ErrUnsupported
}
