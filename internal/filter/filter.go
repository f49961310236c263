// Package filter applies range and membership predicates to a dataset and
// produces read-only views.
package filter

import (
	"errors"
	"math"

	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
)

// ErrEmptyResult signals that a filter combination matched nothing.
// Downstream output degrades to empty tables and N/A metrics.
var ErrEmptyResult = errors.New("no records match the selected filters")

// Params are the user selections for one evaluation.
type Params struct {
	// Column is the pollutant column the range applies to. Empty disables
	// the range predicate.
	Column string  `json:"column"`
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	// Countries and Cities: empty means no constraint.
	Countries []string `json:"countries,omitempty"`
	Cities    []string `json:"cities,omitempty"`
	// Categories: empty means every category present, blank included, so
	// nothing is excluded.
	Categories []string `json:"categories,omitempty"`
}

// View is a filtered projection of a dataset. Records share storage with
// the dataset and must not be modified.
type View struct {
	Columns []string
	Records []dataset.Record
}

// All returns a view over every record of the dataset.
func All(ds *dataset.Dataset) View {
	if ds == nil {
		return View{}
	}
	return View{Columns: ds.Columns(), Records: ds.Records}
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.Records) }

// Empty reports whether the view has no records.
func (v View) Empty() bool { return len(v.Records) == 0 }

// Check returns ErrEmptyResult for an empty view.
func (v View) Check() error {
	if v.Empty() {
		return ErrEmptyResult
	}
	return nil
}

// Values returns the column values of the view in order, NaN included.
func (v View) Values(column string) []float64 {
	out := make([]float64, len(v.Records))
	for i, r := range v.Records {
		out[i] = r.Value(column)
	}
	return out
}

// DefaultRange returns the minimum and maximum of a column over the full
// dataset, ignoring missing values. ok is false when the column has no
// numeric values.
func DefaultRange(ds *dataset.Dataset, column string) (low, high float64, ok bool) {
	low, high = math.Inf(1), math.Inf(-1)
	if ds == nil {
		return 0, 0, false
	}
	for _, r := range ds.Records {
		x := r.Value(column)
		if math.IsNaN(x) {
			continue
		}
		ok = true
		if x < low {
			low = x
		}
		if x > high {
			high = x
		}
	}
	if !ok {
		return 0, 0, false
	}
	return low, high, true
}

// Apply filters the full dataset.
func Apply(ds *dataset.Dataset, p Params) View {
	return ApplyView(All(ds), p)
}

// ApplyView filters an existing view. All predicates are combined with AND
// and the input order is preserved.
func ApplyView(v View, p Params) View {
	countries := toSet(p.Countries)
	cities := toSet(p.Cities)
	categories := toSet(p.Categories)

	out := View{Columns: v.Columns}
	for _, r := range v.Records {
		if p.Column != "" {
			x := r.Value(p.Column)
			if math.IsNaN(x) || x < p.Low || x > p.High {
				continue
			}
		}
		if len(countries) > 0 {
			if _, ok := countries[r.Country]; !ok {
				continue
			}
		}
		if len(cities) > 0 {
			if _, ok := cities[r.City]; !ok {
				continue
			}
		}
		if len(categories) > 0 {
			if _, ok := categories[r.Category]; !ok {
				continue
			}
		}
		out.Records = append(out.Records, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
