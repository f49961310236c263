package chart

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/Ahananian1/air-quality-explorer/internal/severity"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Point is one location on the bubble map.
type Point struct {
	Label    string
	Category string
	Lat      float64
	Lng      float64
	// Size drives the bubble radius; NaN draws the smallest bubble.
	Size float64
}

const (
	minDot = 2.0
	maxDot = 16.0
)

// BubbleMap plots points on an equirectangular lat/lng grid, one colored
// series per category with bubbles scaled by Size.
func BubbleMap(w io.Writer, title string, points []Point) error {
	if len(points) == 0 {
		return ErrNoData
	}
	maxSize := 0.0
	for _, p := range points {
		if !math.IsNaN(p.Size) {
			maxSize = math.Max(maxSize, p.Size)
		}
	}

	type group struct {
		xs, ys, sizes []float64
	}
	groups := map[string]*group{}
	for _, p := range points {
		g := groups[p.Category]
		if g == nil {
			g = &group{}
			groups[p.Category] = g
		}
		g.xs = append(g.xs, p.Lng)
		g.ys = append(g.ys, p.Lat)
		g.sizes = append(g.sizes, dotWidth(p.Size, maxSize))
	}
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return severity.Default.Less(names[i], names[j]) })

	series := make([]gochart.Series, 0, len(names))
	for _, name := range names {
		g := groups[name]
		sizes := g.sizes
		label := name
		if label == "" {
			label = "(none)"
		}
		series = append(series, gochart.ContinuousSeries{
			Name: label,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotColor:    CategoryColor(name).WithAlpha(180),
				DotWidth:    minDot,
				DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
					return sizes[index]
				},
			},
			XValues: g.xs,
			YValues: g.ys,
		})
	}

	graph := gochart.Chart{
		Title:      title,
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16}},
		XAxis: gochart.XAxis{
			Name:  "Longitude",
			Range: &gochart.ContinuousRange{Min: -180, Max: 180},
		},
		YAxis: gochart.YAxis{
			Name:  "Latitude",
			Range: &gochart.ContinuousRange{Min: -90, Max: 90},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render bubble map: %w", err)
	}
	return nil
}

func dotWidth(size, max float64) float64 {
	if math.IsNaN(size) || size <= 0 || max <= 0 {
		return minDot
	}
	return minDot + (maxDot-minDot)*math.Sqrt(size/max)
}
