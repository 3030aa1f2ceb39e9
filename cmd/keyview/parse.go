package keyview

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/model"
	"github.com/spf13/cobra"
)

var (
	parseScale float64
	parseJSON  bool
)

// WriteLayoutTable prints one row per key with its geometry and label.
func WriteLayoutTable(out io.Writer, l *model.Layout) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tX\tY\tW\tH\tR\tLABEL\t")

	for i, k := range l.Keys {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\t%s\t\n", i, k.X, k.Y, k.W, k.H, k.R, l.LabelAt(i))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	for _, layer := range l.Layers {
		fmt.Fprintf(out, "layer %s: %d labels\n", layer.Name, len(layer.Labels))
	}

	return nil
}

// parseCmd represents the parse command.
var parseCmd = &cobra.Command{
	Use:   "parse POSITIONS [KEYMAP]",
	Short: "Print a parsed layout",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var keymap string
		if len(args) == 2 {
			keymap = args[1]
		}

		l, err := layout.LoadFiles(args[0], keymap, parseScale)
		if err != nil {
			return err
		}

		if parseJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(l)
		}

		return WriteLayoutTable(cmd.OutOrStdout(), l)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Float64Var(&parseScale, "scale", 1, "Factor applied to CSV key positions")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the layout as JSON")
}
