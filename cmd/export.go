package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/export"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/Ahananian1/air-quality-explorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expLoad   loadFlags
	expSel    filterFlags
	expOutput string
	expSheet  string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the filtered view to CSV or XLSX",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := expLoad.load(args)
		if err != nil {
			return err
		}
		_, p, err := expSel.params(cmd, ds)
		if err != nil {
			return err
		}
		v := filter.Apply(ds, p)
		warnEmpty(cmd, v)

		path := expOutput
		if path == "" {
			path = export.FileName
		}
		write := func(w io.Writer) error { return export.WriteCSV(w, v) }
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			sheet := expSheet
			if sheet == "" {
				if c, _ := settings(); c != nil {
					sheet = c.XLSXSheet
				}
			}
			write = func(w io.Writer) error { return export.WriteXLSX(w, v, sheet) }
		}
		if err := utils.SafeWrite(path, write); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d rows to %s\n", v.Len(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expLoad.register(exportCmd)
	expSel.register(exportCmd)
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path; .xlsx writes a workbook (default "+export.FileName+")")
	exportCmd.Flags().StringVar(&expSheet, "sheet-name", "", "XLSX: sheet name of the exported workbook")
}
