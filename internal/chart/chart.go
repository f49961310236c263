// Package chart renders the dashboard charts as SVG.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Ahananian1/air-quality-explorer/internal/analysis"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

const (
	defaultWidth  = 960
	defaultHeight = 480
)

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value float64
}

func valueRange(max float64) *gochart.ContinuousRange {
	if max <= 0 || math.IsNaN(max) {
		max = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: max * 1.1}
}

// Bars renders a vertical bar chart, e.g. the most polluted cities.
func Bars(w io.Writer, title, yName string, bars []Bar) error {
	values := make([]gochart.Value, 0, len(bars))
	max := 0.0
	for _, b := range bars {
		if math.IsNaN(b.Value) {
			continue
		}
		values = append(values, gochart.Value{Label: b.Label, Value: b.Value})
		max = math.Max(max, b.Value)
	}
	if len(values) == 0 {
		return ErrNoData
	}
	graph := gochart.BarChart{
		Title:      title,
		Width:      defaultWidth,
		Height:     defaultHeight,
		BarWidth:   40,
		BarSpacing: 20,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Bottom: 96}},
		XAxis:      gochart.Style{TextRotationDegrees: 45},
		YAxis: gochart.YAxis{
			Name:  yName,
			Range: valueRange(max),
		},
		Bars: values,
	}
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// Histogram renders histogram bins as adjacent bars.
func Histogram(w io.Writer, title string, bins []analysis.Bin) error {
	if len(bins) == 0 {
		return ErrNoData
	}
	values := make([]gochart.Value, len(bins))
	max := 0
	for i, b := range bins {
		values[i] = gochart.Value{Label: fmt.Sprintf("%.0f", b.Lo), Value: float64(b.Count)}
		if b.Count > max {
			max = b.Count
		}
	}
	graph := gochart.BarChart{
		Title:      title,
		Width:      defaultWidth,
		Height:     defaultHeight,
		BarWidth:   36,
		BarSpacing: 4,
		Background: gochart.Style{Padding: gochart.Box{Top: 48}},
		YAxis: gochart.YAxis{
			Name:  "Count",
			Range: valueRange(float64(max)),
		},
		Bars: values,
	}
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render histogram: %w", err)
	}
	return nil
}

var categoryColors = map[string]drawing.Color{
	"Good":                           drawing.ColorFromHex("00e400"),
	"Moderate":                       drawing.ColorFromHex("e6c700"),
	"Unhealthy for Sensitive Groups": drawing.ColorFromHex("ff7e00"),
	"Unhealthy":                      drawing.ColorFromHex("ff0000"),
	"Very Unhealthy":                 drawing.ColorFromHex("8f3f97"),
	"Hazardous":                      drawing.ColorFromHex("7e0023"),
}

// CategoryColor returns the conventional AQI color for a category.
func CategoryColor(category string) drawing.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return drawing.ColorFromHex("808080")
}
