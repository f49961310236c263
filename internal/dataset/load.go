package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	log "github.com/sirupsen/logrus"
)

// DefaultOptions reads the pollutant columns as numbers and picks the
// delimiter from the file extension.
func DefaultOptions() Options {
	return Options{NumericColumns: catalog.Pollutants.Columns()}
}

// Open reads and cleans the table at path. On failure it returns an empty
// Dataset and a *LoadError.
func Open(path string, opt Options) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Empty(path), &LoadError{Path: path, Err: err}
	}
	return Read(bytes.NewReader(b), path, opt)
}

// Read parses a table from r; name selects the format by extension and is
// recorded as the dataset source.
func Read(r io.Reader, name string, opt Options) (*Dataset, error) {
	header, rows, err := readerFor(name).ReadTable(r, name, opt)
	if err != nil {
		return Empty(name), &LoadError{Path: name, Err: err}
	}
	ds, err := New(header, rows, opt)
	if err != nil {
		return Empty(name), &LoadError{Path: name, Err: err}
	}
	ds.Source = name
	log.WithFields(log.Fields{
		"source":      name,
		"rows_read":   ds.Stats.RowsRead,
		"duplicates":  ds.Stats.DuplicatesDropped,
		"missing_geo": ds.Stats.MissingGeoDropped,
		"records":     len(ds.Records),
	}).Debug("dataset loaded")
	return ds, nil
}

// New builds a Dataset from an in-memory table: headers are trimmed, exact
// duplicate rows dropped (first occurrence kept) and rows without a usable
// lat or lng dropped.
func New(header []string, rows [][]string, opt Options) (*Dataset, error) {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	schema := newSchema(cols)
	ds := &Dataset{Schema: schema}
	if opt.NumericColumns == nil {
		opt.NumericColumns = catalog.Pollutants.Columns()
	}

	idx := func(name string) int {
		if i, ok := schema.index[name]; ok {
			return i
		}
		return -1
	}
	iCity, iCountry, iCat := idx(catalog.ColCity), idx(catalog.ColCountry), idx(catalog.ColCategory)
	iLat, iLng := idx(catalog.ColLat), idx(catalog.ColLng)
	type numCol struct {
		name string
		i    int
	}
	var numeric []numCol
	for _, c := range opt.NumericColumns {
		if i := idx(c); i >= 0 {
			numeric = append(numeric, numCol{name: c, i: i})
		}
	}

	seen := make(map[string]struct{}, len(rows))
	for n, row := range rows {
		ds.Stats.RowsRead++
		if len(row) > len(cols) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", n+2, len(cols), len(row))
		}
		if len(row) < len(cols) {
			tmp := make([]string, len(cols))
			copy(tmp, row)
			row = tmp
		} else {
			row = append([]string(nil), row...)
		}
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			ds.Stats.DuplicatesDropped++
			continue
		}
		seen[key] = struct{}{}

		cell := func(i int) string {
			if i < 0 {
				return ""
			}
			return row[i]
		}
		lat, okLat := parseNumeric(cell(iLat), opt)
		lng, okLng := parseNumeric(cell(iLng), opt)
		if !okLat || !okLng {
			ds.Stats.MissingGeoDropped++
			continue
		}
		rec := Record{
			Index:    len(ds.Records),
			City:     cell(iCity),
			Country:  cell(iCountry),
			Category: cell(iCat),
			Lat:      lat,
			Lng:      lng,
			Values:   make(map[string]float64, len(numeric)),
			Fields:   row,
			schema:   schema,
		}
		for _, nc := range numeric {
			v, _ := parseNumeric(row[nc.i], opt)
			rec.Values[nc.name] = v
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}
