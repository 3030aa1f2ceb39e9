package keyview

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/dasdy/keyview/db"
	"github.com/dasdy/keyview/keylog"
	"github.com/dasdy/keyview/theme"
	"github.com/dasdy/keyview/viewer"
	"github.com/dasdy/keyview/web"
	"github.com/dasdy/keyview/web/routes"
	"github.com/spf13/cobra"
)

var (
	showLayout  layoutOptions
	showSources sourceOptions

	port         int
	dev          bool
	themeName    string
	zoom         string
	canvasWidth  float64
	canvasHeight float64
	chordLength  int
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Serve the layout viewer in a browser",
	Long: `Serves a page that draws the layout and highlights keys pressed in the browser window
or on the given serial and input devices. Layouts can also be uploaded to /api/layout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		th, ok := theme.Lookup(themeName)
		if !ok {
			return fmt.Errorf("unknown theme %q, expected one of %v", themeName, theme.Names())
		}

		scale, err := zoomPercent(zoom)
		if err != nil {
			return err
		}

		state := viewer.New()
		defer state.Close()

		if showLayout.given() {
			l, err := showLayout.load()
			if err != nil {
				return err
			}

			state.Load(l)
		} else {
			slog.Warn("Starting without a layout, upload one to /api/layout")
		}

		storage, err := db.NewMemoryStorage()
		if err != nil {
			return err
		}
		defer storage.Close()

		tracker := db.NewChordTracker(chordLength)
		state.OnChange(keylog.Recorder(storage, tracker, nil))

		closer, err := showSources.start(ctx, state)
		defer closer()

		if err != nil {
			return err
		}

		handler := &routes.ServerHandler{
			State:        state,
			Storage:      storage,
			Tracker:      tracker,
			Theme:        th,
			CanvasWidth:  canvasWidth,
			CanvasHeight: canvasHeight,
			Scale:        scale,
		}

		return web.StartServer(ctx, port, handler, dev)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showLayout.register(showCmd)
	showSources.register(showCmd)

	showCmd.Flags().IntVarP(&port, "port", "p", 9000,
		"Port on which server should be watching")

	showCmd.Flags().BoolVar(&dev,
		"dev",
		false,
		"Enable developer mode")

	showCmd.Flags().StringVar(&themeName, "theme", theme.Default, "Colour theme")
	showCmd.Flags().StringVar(&zoom, "zoom", "", "Manual zoom in percent, e.g. 80%; empty fits the layout")
	showCmd.Flags().Float64Var(&canvasWidth, "canvas-width", routes.DefaultCanvasWidth, "Canvas width in pixels")
	showCmd.Flags().Float64Var(&canvasHeight, "canvas-height", routes.DefaultCanvasHeight, "Canvas height in pixels")
	showCmd.Flags().IntVar(&chordLength, "chord-length", 2, "Minimum number of labels counted as a chord in the key log")
}
