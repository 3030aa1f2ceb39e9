package keyview

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dasdy/keyview/logging"
	"github.com/dasdy/keyview/theme"
	"github.com/dasdy/keyview/tui"
	"github.com/dasdy/keyview/viewer"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var (
	viewLayout  layoutOptions
	viewSources sourceOptions

	viewTheme string
	viewZoom  string
	logFile   string
)

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the layout in the terminal",
	Long: `Draws the layout in the terminal and highlights keys typed into it, clicked mouse
buttons and wheel motion, as well as events from serial and input devices.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		th, ok := theme.Lookup(viewTheme)
		if !ok {
			return fmt.Errorf("unknown theme %q, expected one of %v", viewTheme, theme.Names())
		}

		scale, err := zoomPercent(viewZoom)
		if err != nil {
			return err
		}

		l, err := viewLayout.load()
		if err != nil {
			return err
		}

		// the terminal is taken by the viewer
		var logOut io.Writer = io.Discard

		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("could not open log file %s: %w", logFile, err)
			}
			defer f.Close()

			logOut = f
		}

		if err := logging.Setup(logOut, logLevel); err != nil {
			return err
		}

		state := viewer.New()
		defer state.Close()

		state.Load(l)

		closer, err := viewSources.start(ctx, state)
		defer closer()

		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("could not open terminal: %w", err)
		}

		if err := screen.Init(); err != nil {
			return fmt.Errorf("could not initialize terminal: %w", err)
		}

		tui.New(screen, state, tui.WithTheme(th), tui.WithScale(float64(scale)/100)).Run(ctx)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewLayout.register(viewCmd)
	viewSources.register(viewCmd)

	viewCmd.Flags().StringVar(&viewTheme, "theme", "console", "Colour theme")
	viewCmd.Flags().StringVar(&viewZoom, "zoom", "", "Manual zoom in percent of a cell per layout unit; empty fits the layout")
	viewCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the terminal is in use")
}
