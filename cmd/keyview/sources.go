package keyview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dasdy/keyview/catalog"
	"github.com/dasdy/keyview/keylog"
	"github.com/dasdy/keyview/keylog/evdev"
	"github.com/dasdy/keyview/keylog/ports"
	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/viewer"
	"github.com/spf13/cobra"
)

// autoDevice asks for device discovery instead of a fixed path.
const autoDevice = "auto"

var errNoLayoutSource = errors.New("no layout given: use --layout-file or --catalog with --keyboard")

// layoutOptions are the flags that select a layout.
type layoutOptions struct {
	layoutFile  string
	keymapFile  string
	catalogDir  string
	keyboardID  string
	scaleFactor float64
}

func (o *layoutOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.layoutFile, "layout-file", "l", "",
		"Key positions: CSV table, JSON layout or keymap with &key_physical_attrs")
	cmd.Flags().StringVarP(&o.keymapFile, "keymap-file", "k", "",
		"Key labels: ZMK keymap, QMK keymap.c or CSV table")
	cmd.Flags().StringVar(&o.catalogDir, "catalog", "", "Keyboard catalog directory with an index.yaml")
	cmd.Flags().StringVar(&o.keyboardID, "keyboard", "", "Keyboard id in the catalog")
	cmd.Flags().Float64Var(&o.scaleFactor, "scale", 1, "Factor applied to CSV key positions")
}

func (o *layoutOptions) given() bool {
	return o.layoutFile != "" || (o.catalogDir != "" && o.keyboardID != "")
}

func (o *layoutOptions) load() (*model.Layout, error) {
	switch {
	case o.layoutFile != "":
		return layout.LoadFiles(o.layoutFile, o.keymapFile, o.scaleFactor)
	case o.catalogDir != "" && o.keyboardID != "":
		c, err := catalog.Load(o.catalogDir)
		if err != nil {
			return nil, err
		}

		kb, err := c.Find(o.keyboardID)
		if err != nil {
			return nil, err
		}

		return kb.Open(o.scaleFactor)
	default:
		return nil, errNoLayoutSource
	}
}

// sourceOptions are the flags that select live event sources.
type sourceOptions struct {
	serial []string
	evdev  []string
}

func (o *sourceOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.serial, "serial", nil,
		"ZMK serial consoles to read key events from, or \"auto\" to watch for devices")
	cmd.Flags().StringSliceVar(&o.evdev, "evdev", nil,
		"Linux input devices to read events from, or \"auto\" for every keyboard and mouse")
}

// start launches a reader goroutine per source. The returned closer releases the
// serial ports; evdev readers stop with ctx.
func (o *sourceOptions) start(ctx context.Context, state *viewer.State) (func(), error) {
	closers := make([]func(), 0, 2)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	switch {
	case len(o.serial) == 1 && o.serial[0] == autoDevice:
		reader := ports.DefaultMonitoringDeviceReader()
		closers = append(closers, func() { reader.Close() })

		go keylog.KeyLogLoop(ctx, reader.Channel(ctx), state)
	case len(o.serial) > 0:
		lines, closer, err := ports.OpenAll(ctx, o.serial...)
		if err != nil {
			return closeAll, suggestSerial(err)
		}

		closers = append(closers, closer)

		go keylog.KeyLogLoop(ctx, lines, state)
	}

	paths := o.evdev
	if len(paths) == 1 && paths[0] == autoDevice {
		found, err := evdev.FindKeyboards()
		if err != nil {
			return closeAll, err
		}

		slog.Info("Found input devices", "paths", found)

		paths = found
	}

	for _, path := range paths {
		events, err := evdev.Open(ctx, path)
		if err != nil {
			return closeAll, err
		}

		go keylog.EventLoop(ctx, events, state)
	}

	return closeAll, nil
}

func suggestSerial(err error) error {
	names, errInner := ports.GetAvailableDevices()
	if errInner != nil {
		return fmt.Errorf("could not open serial port: %w; could not suggest devices: %w", err, errInner)
	}

	if len(names) > 0 {
		return fmt.Errorf("error opening serial ports: %w. Maybe try instead: %v", err, names)
	}

	return fmt.Errorf("error opening serial ports: %w. It does not seem like any keyboard is connected", err)
}
