// Package export serializes filtered views for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/xuri/excelize/v2"
)

// Download names and content types.
const (
	FileName     = "filtered_air_quality.csv"
	MIMEType     = "text/csv"
	XLSXFileName = "filtered_air_quality.xlsx"
	XLSXMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	DefaultSheet = "Filtered"
)

// WriteCSV writes a header row and one line per record.
func WriteCSV(w io.Writer, v filter.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(v.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range v.Records {
		if err := cw.Write(r.Fields); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the view as CSV text.
func CSV(v filter.View) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteXLSX writes the view as a single-sheet workbook. Pollutant and
// coordinate cells are written as numbers when they parse.
func WriteXLSX(w io.Writer, v filter.View, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	header := make([]interface{}, len(v.Columns))
	numeric := make([]bool, len(v.Columns))
	numCols := map[string]struct{}{catalog.ColLat: {}, catalog.ColLng: {}}
	for _, c := range catalog.Pollutants.Columns() {
		numCols[c] = struct{}{}
	}
	for i, c := range v.Columns {
		header[i] = c
		_, numeric[i] = numCols[c]
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for n, r := range v.Records {
		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		row := make([]interface{}, len(r.Fields))
		for i, raw := range r.Fields {
			row[i] = raw
			if i < len(numeric) && numeric[i] {
				if x := r.Value(v.Columns[i]); !math.IsNaN(x) {
					row[i] = x
				}
			}
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	return f.Write(w)
}
