// Package dataset loads air quality tables into an immutable in-memory
// Dataset and checks them against the required schema.
package dataset

import (
	"math"
	"sort"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
)

// Schema is the ordered column list of a dataset with a name index.
type Schema struct {
	Columns []string
	index   map[string]int
}

func newSchema(columns []string) *Schema {
	s := &Schema{Columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := s.index[c]; !dup {
			s.index[c] = i
		}
	}
	return s
}

// Has reports whether the column exists.
func (s *Schema) Has(column string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[column]
	return ok
}

// Record is one monitoring observation.
type Record struct {
	// Index is the position of the record in the cleaned dataset.
	Index    int
	City     string
	Country  string
	Category string
	Lat      float64
	Lng      float64
	// Values holds the parsed numeric columns; NaN marks a missing cell.
	Values map[string]float64
	// Fields is the raw row aligned with the dataset columns.
	Fields []string

	schema *Schema
}

// Value returns the numeric value of a column, NaN when absent.
func (r Record) Value(column string) float64 {
	switch column {
	case catalog.ColLat:
		return r.Lat
	case catalog.ColLng:
		return r.Lng
	}
	if v, ok := r.Values[column]; ok {
		return v
	}
	return math.NaN()
}

// Field returns the raw text of a column, "" when absent.
func (r Record) Field(column string) string {
	if r.schema == nil {
		return ""
	}
	i, ok := r.schema.index[column]
	if !ok || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Dataset is an ordered, duplicate-free collection of geolocated records.
// It must not be modified after loading.
type Dataset struct {
	Source  string
	Schema  *Schema
	Records []Record
	Stats   LoadStats
}

// LoadStats describes what cleaning removed.
type LoadStats struct {
	RowsRead          int `json:"rows_read"`
	DuplicatesDropped int `json:"duplicates_dropped"`
	MissingGeoDropped int `json:"missing_geo_dropped"`
}

// Empty returns a dataset without columns or records.
func Empty(source string) *Dataset {
	return &Dataset{Source: source, Schema: newSchema(nil)}
}

// Columns returns the trimmed header names.
func (d *Dataset) Columns() []string {
	if d == nil || d.Schema == nil {
		return nil
	}
	return d.Schema.Columns
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Distinct returns the sorted distinct non-empty values of a text column.
func (d *Dataset) Distinct(column string) []string {
	if d == nil {
		return nil
	}
	return DistinctOf(d.Records, column)
}

// DistinctOf returns the sorted distinct non-empty values of a text column.
func DistinctOf(records []Record, column string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range records {
		v := r.Field(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
