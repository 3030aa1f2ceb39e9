//go:build linux

package evdev

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/keyview/model"
	"github.com/holoplot/go-evdev"
)

// Open starts reading the device at path. The channel closes when the device goes
// away or ctx is cancelled.
func Open(ctx context.Context, path string) (<-chan model.RawEvent, error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input device %s: %w", path, err)
	}

	name, _ := device.Name()
	slog.Info("Reading input device", "path", path, "name", name)

	out := make(chan model.RawEvent)

	go func() {
		<-ctx.Done()
		device.Close()
	}()

	go func() {
		defer close(out)

		for {
			e, err := device.ReadOne()
			if err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
					slog.Error("Could not read input device", "path", path, "error", err)
				}

				return
			}

			ev, ok := Translate(e)
			if !ok {
				continue
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// FindKeyboards lists input devices whose kernel name mentions a keyboard or mouse.
func FindKeyboards() ([]string, error) {
	devices, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("could not list input devices: %w", err)
	}

	var result []string

	for _, d := range devices {
		name := strings.ToLower(d.Name)
		if strings.Contains(name, "keyboard") || strings.Contains(name, "mouse") {
			result = append(result, d.Path)
		}
	}

	return result, nil
}
