// Package analysis computes summary statistics, rankings and grouped
// averages over filtered views and renders them as text reports.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/Ahananian1/air-quality-explorer/internal/severity"
)

// Stats summarizes one numeric column. Count is the number of non-missing
// values; when it is zero the other fields are meaningless.
type Stats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// Valid reports whether any value contributed.
func (s Stats) Valid() bool { return s.Count > 0 }

// Format renders a statistic with one decimal, or N/A for empty input.
func (s Stats) Format(x float64) string {
	if !s.Valid() {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", x)
}

// MarshalJSON writes null metrics for empty input.
func (s Stats) MarshalJSON() ([]byte, error) {
	type out struct {
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Min   *float64 `json:"min"`
		Max   *float64 `json:"max"`
	}
	o := out{Count: s.Count}
	if s.Valid() {
		o.Mean, o.Min, o.Max = &s.Mean, &s.Min, &s.Max
	}
	return json.Marshal(o)
}

// Summarize returns mean, min and max of a column, skipping missing values.
func Summarize(v filter.View, column string) Stats {
	var s Stats
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	for _, r := range v.Records {
		x := r.Value(column)
		if math.IsNaN(x) {
			continue
		}
		// Welford update
		s.Count++
		s.Mean += (x - s.Mean) / float64(s.Count)
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	if s.Count == 0 {
		return Stats{}
	}
	return s
}

// TopN returns up to n records with the largest column values, descending.
// Ties keep view order; records without a value are skipped.
func TopN(v filter.View, column string, n int) []dataset.Record {
	if n <= 0 {
		return nil
	}
	out := make([]dataset.Record, 0, len(v.Records))
	for _, r := range v.Records {
		if !math.IsNaN(r.Value(column)) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value(column) > out[j].Value(column)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GroupMean is the average of a value column within one group.
type GroupMean struct {
	Key   string
	Count int
	Mean  float64
}

// MarshalJSON writes a null mean for groups without values.
func (g GroupMean) MarshalJSON() ([]byte, error) {
	type out struct {
		Key   string   `json:"key"`
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
	}
	o := out{Key: g.Key, Count: g.Count}
	if g.Count > 0 {
		o.Mean = &g.Mean
	}
	return json.Marshal(o)
}

// GroupMeans averages valueColumn per distinct groupColumn key. Every key
// present in the view gets exactly one entry; entries are sorted by key.
func GroupMeans(v filter.View, groupColumn, valueColumn string) []GroupMean {
	type acc struct {
		sum float64
		cnt int
	}
	groups := map[string]*acc{}
	for _, r := range v.Records {
		k := r.Field(groupColumn)
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		if x := r.Value(valueColumn); !math.IsNaN(x) {
			a.sum += x
			a.cnt++
		}
	}
	out := make([]GroupMean, 0, len(groups))
	for k, a := range groups {
		g := GroupMean{Key: k, Count: a.cnt}
		if a.cnt > 0 {
			g.Mean = a.sum / float64(a.cnt)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// CategoryCount is the number of records in one AQI category.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoryCounts counts records per category present in the view, ordered
// by severity with unknown categories last.
func CategoryCounts(v filter.View) []CategoryCount {
	counts := map[string]int{}
	for _, r := range v.Records {
		counts[r.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, CategoryCount{Value: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return severity.Default.Less(out[i].Value, out[j].Value) })
	return out
}

// Bin is one histogram bucket covering [Lo, Hi); the last bucket is closed.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram buckets the non-missing values into equal-width bins spanning
// their range. A constant series spans [v-0.5, v+0.5].
func Histogram(values []float64, bins int) []Bin {
	if bins <= 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, x := range values {
		if math.IsNaN(x) {
			continue
		}
		n++
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if n == 0 {
		return nil
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi
	for _, x := range values {
		if math.IsNaN(x) {
			continue
		}
		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// AQIColumns lists the columns whose name mentions AQI, in column order.
func AQIColumns(columns []string) []string {
	var out []string
	for _, c := range columns {
		if strings.Contains(c, "AQI") {
			out = append(out, c)
		}
	}
	return out
}
