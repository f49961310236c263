package cmd

import (
	"fmt"

	"github.com/Ahananian1/air-quality-explorer/internal/analysis"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/Ahananian1/air-quality-explorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumLoad       loadFlags
	sumSel        filterFlags
	sumTop        int
	sumGroupBy    string
	sumMaxCodes   int
	sumJSON       bool
	sumOutputPath string
)

var summaryCmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Summarize a filtered view: metrics, top cities, averages and categories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := sumLoad.load(args)
		if err != nil {
			return err
		}
		pol, p, err := sumSel.params(cmd, ds)
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		if c, _ := settings(); c != nil && c.TopN > 0 {
			opt.TopN = c.TopN
		}
		if cmd.Flags().Changed("top") {
			opt.TopN = sumTop
		}
		opt.GroupBy = sumGroupBy
		opt.MaxCodes = sumMaxCodes
		if opt.GroupBy != "" && !ds.Schema.Has(opt.GroupBy) {
			return fmt.Errorf("unknown --group-by column: %s", opt.GroupBy)
		}

		v := filter.Apply(ds, p)
		warnEmpty(cmd, v)
		rep := analysis.BuildReport(ds, v, pol, p, opt)

		var out []byte
		if sumJSON {
			if out, err = utils.PrettyJSON(rep); err != nil {
				return err
			}
		} else {
			out = []byte(rep.Markdown())
		}
		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	sumLoad.register(summaryCmd)
	sumSel.register(summaryCmd)
	summaryCmd.Flags().IntVar(&sumTop, "top", 10, "number of top cities to rank (default from config top_n)")
	summaryCmd.Flags().StringVar(&sumGroupBy, "group-by", "Country", "column to average the pollutant by (empty disables)")
	summaryCmd.Flags().IntVar(&sumMaxCodes, "max-codes", 20, "maximum AQI level code rows (0 = all)")
	summaryCmd.Flags().BoolVar(&sumJSON, "json", false, "print the report as JSON")
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the report")
}
