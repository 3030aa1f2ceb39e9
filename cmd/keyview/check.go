package keyview

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dasdy/keyview/catalog"
	"github.com/dasdy/keyview/geometry"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var checkCatalogDir string

// CheckResult is the outcome of loading one catalog keyboard.
type CheckResult struct {
	ID     string
	Keys   int
	Labels int
	Layers int
	Err    error
}

// CheckCatalog loads every keyboard of c and fits it to a canvas. progress is
// called after each keyboard.
func CheckCatalog(c *catalog.Catalog, progress func()) []CheckResult {
	results := make([]CheckResult, 0, len(c.Keyboards))

	for _, kb := range c.Keyboards {
		result := CheckResult{ID: kb.ID}

		l, err := kb.Open(1)
		if err == nil {
			result.Keys, result.Labels, result.Layers = len(l.Keys), len(l.Labels), len(l.Layers)
			_, err = geometry.Bounds(l.Keys)
		}

		result.Err = err
		results = append(results, result)

		if progress != nil {
			progress()
		}
	}

	return results
}

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every keyboard of a catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := catalog.Load(checkCatalogDir)
		if err != nil {
			return err
		}

		var progress func()

		if term.IsTerminal(int(os.Stderr.Fd())) {
			bar := progressbar.Default(int64(len(c.Keyboards)), "Checking keyboards...")
			progress = func() { _ = bar.Add(1) }
		}

		results := CheckCatalog(c, progress)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEYS\tLABELS\tLAYERS\tSTATUS")

		failed := 0

		for _, r := range results {
			status := "ok"
			if r.Err != nil {
				status = r.Err.Error()
				failed++
			}

			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", r.ID, r.Keys, r.Labels, r.Layers, status)
		}

		if err := w.Flush(); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d keyboards failed to load", failed, len(results))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkCatalogDir, "catalog", ".", "Keyboard catalog directory with an index.yaml")
}
