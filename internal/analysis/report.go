package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/Ahananian1/air-quality-explorer/internal/severity"
)

// Options controls which sections a report carries.
type Options struct {
	// TopN is the size of the ranking; 0 disables it.
	TopN int
	// GroupBy is the column the pivot averages by.
	GroupBy string
	// MaxCodes limits the level code rows; 0 means all.
	MaxCodes int
}

// DefaultOptions mirrors the dashboard: top 10, average by country.
func DefaultOptions() Options {
	return Options{TopN: 10, GroupBy: catalog.ColCountry, MaxCodes: 20}
}

// Ranked is one entry of the top-N ranking.
type Ranked struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Report is a text-friendly analysis of one filtered view.
type Report struct {
	Name       string            `json:"name"`
	Rows       int               `json:"rows"`
	Matched    int               `json:"matched"`
	Columns    int               `json:"columns"`
	Load       dataset.LoadStats `json:"load"`
	Pollutant  catalog.Pollutant `json:"pollutant"`
	Params     filter.Params     `json:"params"`
	Stats      Stats             `json:"stats"`
	Top        []Ranked          `json:"top,omitempty"`
	GroupBy    string            `json:"group_by,omitempty"`
	Groups     []GroupMean       `json:"groups"`
	Categories []CategoryCount   `json:"categories"`
	Codes      []severity.Code   `json:"codes,omitempty"`
	AQIColumns []string          `json:"aqi_columns"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// BuildReport aggregates a view of ds filtered with p.
func BuildReport(ds *dataset.Dataset, v filter.View, pol catalog.Pollutant, p filter.Params, opt Options) *Report {
	rep := &Report{
		Rows:       ds.Len(),
		Matched:    v.Len(),
		Columns:    len(ds.Columns()),
		Load:       ds.Stats,
		Pollutant:  pol,
		Params:     p,
		Stats:      Summarize(v, pol.Column),
		GroupBy:    opt.GroupBy,
		Categories: CategoryCounts(v),
		AQIColumns: AQIColumns(ds.Columns()),
	}
	if ds.Source != "" {
		rep.Name = filepath.Base(ds.Source)
	}
	for _, r := range TopN(v, pol.Column, opt.TopN) {
		rep.Top = append(rep.Top, Ranked{City: r.City, Country: r.Country, Value: r.Value(pol.Column)})
	}
	if opt.GroupBy != "" {
		rep.Groups = GroupMeans(v, opt.GroupBy, pol.Column)
	}
	codes := severity.Default.Codes(v)
	if opt.MaxCodes > 0 && len(codes) > opt.MaxCodes {
		codes = codes[:opt.MaxCodes]
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("level codes truncated to %d of %d rows", opt.MaxCodes, v.Len()))
	}
	rep.Codes = codes
	if err := v.Check(); err != nil {
		rep.Warnings = append(rep.Warnings, err.Error())
	}
	if n := ds.Stats.DuplicatesDropped; n > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("dropped %d duplicate rows while loading", n))
	}
	if n := ds.Stats.MissingGeoDropped; n > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("dropped %d rows without lat/lng while loading", n))
	}
	return rep
}

// Markdown renders a compact report suitable for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d (matched %d)\n", r.Rows, r.Matched))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", r.Columns))

	b.WriteString("[FILTERS]\n")
	b.WriteString(fmt.Sprintf("- Pollutant: %s (%s)\n", r.Pollutant.Label, r.Pollutant.Column))
	if r.Params.Column != "" {
		b.WriteString(fmt.Sprintf("- Range: %g–%g\n", r.Params.Low, r.Params.High))
	}
	b.WriteString(fmt.Sprintf("- Countries: %s\n", listOrAll(r.Params.Countries)))
	if len(r.Params.Cities) > 0 {
		b.WriteString(fmt.Sprintf("- Cities: %s\n", strings.Join(r.Params.Cities, ", ")))
	}
	if len(r.Params.Categories) > 0 {
		b.WriteString(fmt.Sprintf("- Categories: %s\n", strings.Join(r.Params.Categories, ", ")))
	}

	b.WriteString("\n[STATISTICS]\n")
	b.WriteString(fmt.Sprintf("- Average AQI: %s\n", r.Stats.Format(r.Stats.Mean)))
	b.WriteString(fmt.Sprintf("- Minimum AQI: %s\n", r.Stats.Format(r.Stats.Min)))
	b.WriteString(fmt.Sprintf("- Maximum AQI: %s\n", r.Stats.Format(r.Stats.Max)))

	if len(r.Top) > 0 {
		b.WriteString(fmt.Sprintf("\n[TOP %d CITIES BY %s]\n", len(r.Top), strings.ToUpper(r.Pollutant.Label)))
		for i, t := range r.Top {
			b.WriteString(fmt.Sprintf("%d. %s (%s): %g\n", i+1, safeVal(t.City), safeVal(t.Country), t.Value))
		}
	}

	if r.GroupBy != "" {
		b.WriteString(fmt.Sprintf("\n[AVERAGE BY %s]\n", strings.ToUpper(r.GroupBy)))
		if len(r.Groups) == 0 {
			b.WriteString("(none)\n")
		} else {
			b.WriteString(fmt.Sprintf("| %s | %s |\n| --- | --- |\n", safeName(r.GroupBy), safeName(r.Pollutant.Column)))
			for _, g := range r.Groups {
				mean := "N/A"
				if g.Count > 0 {
					mean = fmt.Sprintf("%.4g", g.Mean)
				}
				b.WriteString(fmt.Sprintf("| %s | %s |\n", safeName(g.Key), mean))
			}
		}
	}

	b.WriteString("\n[CATEGORY COUNTS]\n")
	if len(r.Categories) == 0 {
		b.WriteString("(none)\n")
	}
	for _, c := range r.Categories {
		b.WriteString(fmt.Sprintf("- %s: %d\n", safeName(c.Value), c.Count))
	}

	if len(r.Codes) > 0 {
		b.WriteString("\n[AQI LEVEL CODES]\n")
		b.WriteString("| City | AQI Category | AQI_Level |\n| --- | --- | --- |\n")
		for _, c := range r.Codes {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", safeVal(c.City), safeVal(c.Category), c.Level))
		}
	}

	if len(r.AQIColumns) > 0 {
		b.WriteString("\n[AQI COLUMNS]\n")
		b.WriteString(strings.Join(r.AQIColumns, ", "))
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func listOrAll(vals []string) string {
	if len(vals) == 0 {
		return "(all)"
	}
	return strings.Join(vals, ", ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return safeVal(s)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
