package chart

import (
	"bytes"
	"math"
	"testing"

	"github.com/Ahananian1/air-quality-explorer/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarsRendersSVG(t *testing.T) {
	var buf bytes.Buffer
	err := Bars(&buf, "Top 10 Cities by PM2.5", "PM2.5", []Bar{
		{Label: "Delhi", Value: 500},
		{Label: "Lahore", Value: 420},
		{Label: "Nowhere", Value: math.NaN()},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "Delhi")
}

func TestBarsSingleZeroValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bars(&buf, "t", "y", []Bar{{Label: "A", Value: 0}}))
	assert.Contains(t, buf.String(), "</svg>")
}

func TestNoData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Bars(&buf, "t", "y", nil), ErrNoData)
	assert.ErrorIs(t, Bars(&buf, "t", "y", []Bar{{Label: "A", Value: math.NaN()}}), ErrNoData)
	assert.ErrorIs(t, Histogram(&buf, "t", nil), ErrNoData)
	assert.ErrorIs(t, BubbleMap(&buf, "t", nil), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestHistogramRendersSVG(t *testing.T) {
	bins := analysis.Histogram([]float64{10, 20, 20, 35, 50, 51, 300}, 20)
	var buf bytes.Buffer
	require.NoError(t, Histogram(&buf, "Distribution of Overall AQI", bins))
	assert.Contains(t, buf.String(), "<svg")
}

func TestBubbleMapRendersSVG(t *testing.T) {
	var buf bytes.Buffer
	err := BubbleMap(&buf, "Filtered Air Quality Map", []Point{
		{Label: "Boston", Category: "Good", Lat: 42.36, Lng: -71.05, Size: 40},
		{Label: "Beijing", Category: "Unhealthy", Lat: 39.9, Lng: 116.4, Size: 160},
		{Label: "Paris", Category: "Moderate", Lat: 48.85, Lng: 2.35, Size: math.NaN()},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Unhealthy")
}

func TestDotWidth(t *testing.T) {
	assert.Equal(t, minDot, dotWidth(math.NaN(), 100))
	assert.Equal(t, maxDot, dotWidth(100, 100))
	assert.Equal(t, minDot, dotWidth(5, 0))
	assert.InDelta(t, minDot+(maxDot-minDot)*0.5, dotWidth(25, 100), 1e-9)
}

func TestCategoryColor(t *testing.T) {
	assert.NotEqual(t, CategoryColor("Good"), CategoryColor("Hazardous"))
	assert.Equal(t, CategoryColor("Unknown"), CategoryColor(""))
}
