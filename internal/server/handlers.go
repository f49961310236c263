package server

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/analysis"
	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/chart"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/export"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/gin-gonic/gin"
)

// prepare loads the dataset and parses the request selection.
func (s *Server) prepare(c *gin.Context) (*dataset.Dataset, selection, int, error) {
	ds, status, err := s.load()
	if err != nil {
		return ds, selection{}, status, err
	}
	sel, err := parseSelection(c, ds, s.cfg.DefaultCountries)
	if err != nil {
		return ds, sel, http.StatusBadRequest, err
	}
	return ds, sel, http.StatusOK, nil
}

func (s *Server) reportOptions() analysis.Options {
	return analysis.Options{TopN: s.cfg.TopN, GroupBy: catalog.ColCountry, MaxCodes: s.cfg.MaxTableRows}
}

func (s *Server) index(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		_ = c.Error(err)
		c.HTML(status, "index.html", page{Title: pageTitle, Error: err.Error()})
		return
	}
	c.HTML(http.StatusOK, "index.html", s.buildPage(ds, sel))
}

func (s *Server) health(c *gin.Context) {
	ds, status, err := s.load()
	if err != nil {
		c.JSON(status, gin.H{"status": "unavailable", "error": err.Error(), "rows": ds.Len()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": ds.Len(), "source": ds.Source})
}

func (s *Server) topChart(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.svgError(c, status, err)
		return
	}
	v := filter.Apply(ds, sel.Main)
	top := analysis.TopN(v, sel.Pollutant.Column, s.cfg.TopN)
	bars := make([]chart.Bar, len(top))
	for i, r := range top {
		bars[i] = chart.Bar{Label: r.City, Value: r.Value(sel.Pollutant.Column)}
	}
	title := fmt.Sprintf("Top %d Cities by %s", s.cfg.TopN, sel.Pollutant.Label)
	s.svg(c, title, func(w io.Writer) error {
		return chart.Bars(w, title, sel.Pollutant.Label, bars)
	})
}

func (s *Server) histogramChart(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.svgError(c, status, err)
		return
	}
	bins := analysis.Histogram(filter.All(ds).Values(sel.Pollutant.Column), s.cfg.HistogramBins)
	title := fmt.Sprintf("Distribution of %s Across All Locations", sel.Pollutant.Label)
	s.svg(c, title, func(w io.Writer) error {
		return chart.Histogram(w, title, bins)
	})
}

func (s *Server) mapChart(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.svgError(c, status, err)
		return
	}
	v := filter.Apply(ds, sel.Map)
	points := make([]chart.Point, len(v.Records))
	for i, r := range v.Records {
		points[i] = chart.Point{
			Label:    r.City,
			Category: r.Category,
			Lat:      r.Lat,
			Lng:      r.Lng,
			Size:     r.Value(catalog.ColPM25),
		}
	}
	const title = "Filtered Air Quality Map"
	s.svg(c, title, func(w io.Writer) error {
		return chart.BubbleMap(w, title, points)
	})
}

// svg renders a chart; an empty input draws a placeholder instead.
func (s *Server) svg(c *gin.Context, title string, render func(io.Writer) error) {
	var buf bytes.Buffer
	err := render(&buf)
	switch {
	case errors.Is(err, chart.ErrNoData):
		c.Data(http.StatusOK, svgMIME, placeholderSVG(title, "No data for the current selection"))
	case err != nil:
		s.svgError(c, http.StatusInternalServerError, err)
	default:
		c.Data(http.StatusOK, svgMIME, buf.Bytes())
	}
}

func (s *Server) svgError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.Data(status, svgMIME, placeholderSVG("Error", err.Error()))
}

const svgMIME = "image/svg+xml"

func placeholderSVG(title, msg string) []byte {
	return []byte(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="1024" height="200">`+
		`<text x="20" y="40" font-family="sans-serif" font-size="18">%s</text>`+
		`<text x="20" y="80" font-family="sans-serif" font-size="14" fill="#666">%s</text></svg>`,
		html.EscapeString(title), html.EscapeString(msg)))
}

func (s *Server) exportCSV(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.jsonError(c, status, err)
		return
	}
	text, err := export.CSV(filter.Apply(ds, sel.Map))
	if err != nil {
		s.jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", attachment(export.FileName))
	c.Data(http.StatusOK, export.MIMEType, []byte(text))
}

func (s *Server) exportXLSX(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.jsonError(c, status, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, filter.Apply(ds, sel.Map), s.cfg.XLSXSheet); err != nil {
		s.jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", attachment(export.XLSXFileName))
	c.Data(http.StatusOK, export.XLSXMIMEType, buf.Bytes())
}

func attachment(name string) string { return fmt.Sprintf("attachment; filename=%q", name) }

// viewJSON is the API shape of a filtered view.
type viewJSON struct {
	Pollutant catalog.Pollutant   `json:"pollutant"`
	Params    filter.Params       `json:"params"`
	Columns   []string            `json:"columns"`
	Total     int                 `json:"total"`
	Records   []map[string]string `json:"records"`
	Warning   string              `json:"warning,omitempty"`
}

// apiView returns the main view; ?view=map selects the city/category view.
func (s *Server) apiView(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.jsonError(c, status, err)
		return
	}
	p := sel.Main
	if c.Query("view") == "map" {
		p = sel.Map
	}
	v := filter.Apply(ds, p)
	out := viewJSON{Pollutant: sel.Pollutant, Params: p, Columns: v.Columns, Total: v.Len()}
	out.Records = make([]map[string]string, 0, v.Len())
	for _, r := range v.Records {
		m := make(map[string]string, len(v.Columns))
		for i, col := range v.Columns {
			m[col] = r.Fields[i]
		}
		out.Records = append(out.Records, m)
	}
	if err := v.Check(); err != nil {
		out.Warning = err.Error()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) apiSummary(c *gin.Context) {
	ds, sel, status, err := s.prepare(c)
	if err != nil {
		s.jsonError(c, status, err)
		return
	}
	v := filter.Apply(ds, sel.Main)
	c.JSON(http.StatusOK, analysis.BuildReport(ds, v, sel.Pollutant, sel.Main, s.reportOptions()))
}

func (s *Server) apiOptions(c *gin.Context) {
	ds, status, err := s.load()
	if err != nil {
		s.jsonError(c, status, err)
		return
	}
	type bounds struct {
		Key   string   `json:"key"`
		Label string   `json:"label"`
		Low   *float64 `json:"low"`
		High  *float64 `json:"high"`
	}
	pollutants := make([]bounds, 0, len(catalog.Pollutants))
	for _, p := range catalog.Pollutants {
		b := bounds{Key: p.Key, Label: p.Label}
		if lo, hi, ok := filter.DefaultRange(ds, p.Column); ok {
			b.Low, b.High = &lo, &hi
		}
		pollutants = append(pollutants, b)
	}
	c.JSON(http.StatusOK, gin.H{
		"pollutants":        pollutants,
		"choices":           filter.Options(ds),
		"default_countries": filter.Intersect(s.cfg.DefaultCountries, ds.Distinct(catalog.ColCountry)),
	})
}

func (s *Server) jsonError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// page is the data behind index.html.
type page struct {
	Title      string
	Error      string
	Subheader  string
	Pollutants []choice
	Low, High  string
	RangeFor   string
	Countries  []choice
	Cities     []choice
	Categories []choice

	Report    *analysis.Report
	Columns   []string
	Rows      [][]string
	TableNote string
	Metrics   []metric
	MapRows   int
	Links     links
}

type choice struct {
	Value    string
	Label    string
	Selected bool
}

type metric struct {
	Label string
	Value string
}

type links struct {
	Top, Histogram, Map, CSV, XLSX string
}

const pageTitle = "Global Air Quality Explorer"

func (s *Server) buildPage(ds *dataset.Dataset, sel selection) page {
	main := filter.Apply(ds, sel.Main)
	mapView := filter.Apply(ds, sel.Map)
	rep := analysis.BuildReport(ds, main, sel.Pollutant, sel.Main, s.reportOptions())
	opts := filter.Options(ds)

	p := page{
		Title:      pageTitle,
		Report:     rep,
		Columns:    main.Columns,
		MapRows:    mapView.Len(),
		Countries:  choices(opts.Countries, sel.Main.Countries),
		Cities:     choices(opts.Cities, sel.Map.Cities),
		Categories: choices(opts.Categories, mapCategories(sel, opts)),
		Links: links{
			Top:       sel.link("/chart/top.svg"),
			Histogram: sel.link("/chart/histogram.svg"),
			Map:       sel.link("/chart/map.svg"),
			CSV:       sel.link("/export.csv"),
			XLSX:      sel.link("/export.xlsx"),
		},
	}
	for _, pol := range catalog.Pollutants {
		p.Pollutants = append(p.Pollutants, choice{Value: pol.Key, Label: pol.Label, Selected: pol.Key == sel.Pollutant.Key})
	}
	if sel.Main.Column != "" {
		p.RangeFor = sel.Pollutant.Key
		if !math.IsInf(sel.Main.Low, 0) {
			p.Low = formatBound(sel.Main.Low)
		}
		if !math.IsInf(sel.Main.High, 0) {
			p.High = formatBound(sel.Main.High)
		}
	}
	countries := "All"
	if len(sel.Main.Countries) > 0 {
		countries = strings.Join(sel.Main.Countries, ", ")
	}
	bounds := "all values"
	if p.Low != "" || p.High != "" {
		bounds = p.Low + "–" + p.High
	}
	p.Subheader = fmt.Sprintf("Showing data for: %s, %s, Countries: %s", sel.Pollutant.Label, bounds, countries)

	limit := s.cfg.MaxTableRows
	if limit <= 0 || limit > main.Len() {
		limit = main.Len()
	}
	for _, r := range main.Records[:limit] {
		p.Rows = append(p.Rows, r.Fields)
	}
	if limit < main.Len() {
		p.TableNote = fmt.Sprintf("Showing the first %d of %d rows.", limit, main.Len())
	}
	p.Metrics = []metric{
		{Label: "Average AQI", Value: rep.Stats.Format(rep.Stats.Mean)},
		{Label: "Minimum AQI", Value: rep.Stats.Format(rep.Stats.Min)},
		{Label: "Maximum AQI", Value: rep.Stats.Format(rep.Stats.Max)},
	}
	return p
}

// mapCategories is the category selection shown in the map form; an
// empty selection shows every category selected.
func mapCategories(sel selection, opts filter.Choices) []string {
	if len(sel.Map.Categories) == 0 {
		return opts.Categories
	}
	return sel.Map.Categories
}

func choices(values, selected []string) []choice {
	set := make(map[string]bool, len(selected))
	for _, v := range selected {
		set[v] = true
	}
	out := make([]choice, len(values))
	for i, v := range values {
		out[i] = choice{Value: v, Label: v, Selected: set[v]}
	}
	return out
}

var templateFuncs = map[string]any{
	"groupMean": func(g analysis.GroupMean) string {
		if g.Count == 0 || math.IsNaN(g.Mean) {
			return "N/A"
		}
		return fmt.Sprintf("%.1f", g.Mean)
	},
}
