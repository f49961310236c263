package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/export"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/Ahananian1/air-quality-explorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterLoad   loadFlags
	filterSel    filterFlags
	filterFormat string
	filterLimit  int
	filterOutput string
)

var filterCmd = &cobra.Command{
	Use:   "filter [file]",
	Short: "Print the records matching a pollutant range and selections",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(filterFormat))
		switch format {
		case "table", "csv", "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use table|csv|json)", filterFormat)
		}
		ds, err := filterLoad.load(args)
		if err != nil {
			return err
		}
		pol, p, err := filterSel.params(cmd, ds)
		if err != nil {
			return err
		}
		v := filter.Apply(ds, p)
		warnEmpty(cmd, v)
		total := v.Len()
		if filterLimit > 0 && filterLimit < total {
			v.Records = v.Records[:filterLimit]
		}

		write := func(w io.Writer) error {
			switch format {
			case "csv":
				return export.WriteCSV(w, v)
			case "json":
				return writeRecordsJSON(w, v)
			}
			return writeTable(w, v, pol, total)
		}
		if filterOutput != "" {
			if err := utils.SafeWrite(filterOutput, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rows to %s\n", v.Len(), filterOutput)
			return nil
		}
		return write(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterLoad.register(filterCmd)
	filterSel.register(filterCmd)
	filterCmd.Flags().StringVarP(&filterFormat, "format", "f", "table", "output format: table|csv|json")
	filterCmd.Flags().IntVarP(&filterLimit, "limit", "n", 0, "maximum rows to print (0 = all)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "optional path to write the result")
}

func writeTable(w io.Writer, v filter.View, pol catalog.Pollutant, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "City\tCountry\t%s\tAQI Category\tlat\tlng\n", pol.Label)
	for _, r := range v.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.City, r.Country, r.Field(pol.Column), r.Category, r.Field(catalog.ColLat), r.Field(catalog.ColLng))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d of %d rows)\n", v.Len(), total)
	return err
}

func writeRecordsJSON(w io.Writer, v filter.View) error {
	recs := make([]map[string]string, 0, v.Len())
	for _, r := range v.Records {
		m := make(map[string]string, len(v.Columns))
		for i, col := range v.Columns {
			m[col] = r.Fields[i]
		}
		recs = append(recs, m)
	}
	b, err := utils.PrettyJSON(recs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
