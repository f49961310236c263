package cmd

import (
	"fmt"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/analysis"
	"github.com/spf13/cobra"
)

var validateLoad loadFlags

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Load a dataset and check its required columns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := validateLoad.load(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ %s is valid\n", ds.Source)
		fmt.Fprintf(out, "Rows: %d (read %d, dropped %d duplicates, %d without lat/lng)\n",
			ds.Len(), ds.Stats.RowsRead, ds.Stats.DuplicatesDropped, ds.Stats.MissingGeoDropped)
		fmt.Fprintf(out, "Columns: %d\n", len(ds.Columns()))
		fmt.Fprintf(out, "AQI columns: %s\n", strings.Join(analysis.AQIColumns(ds.Columns()), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateLoad.register(validateCmd)
}
