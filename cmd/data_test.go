package cmd

import (
	"math"
	"testing"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/spf13/cobra"
)

func newParamsCmd(f *filterFlags) *cobra.Command {
	c := &cobra.Command{Use: "test"}
	f.register(c)
	return c
}

func TestParamsSingleBoundWithoutNumericValues(t *testing.T) {
	ds, err := dataset.New(
		[]string{"City", "Country", "CO AQI Value", "lat", "lng"},
		[][]string{{"A", "US", "", "1", "1"}, {"B", "FR", "n/a", "2", "2"}},
		dataset.DefaultOptions(),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var f filterFlags
	c := newParamsCmd(&f)
	if err := c.Flags().Set("pollutant", "co"); err != nil {
		t.Fatal(err)
	}
	if err := c.Flags().Set("low", "10"); err != nil {
		t.Fatal(err)
	}
	_, p, err := f.params(c, ds)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Column != catalog.ColCO || p.Low != 10 || !math.IsInf(p.High, 1) {
		t.Fatalf("unexpected params: %+v", p)
	}

	var g filterFlags
	c = newParamsCmd(&g)
	_ = c.Flags().Set("pollutant", "co")
	_ = c.Flags().Set("high", "-5")
	_, p, err = g.params(c, ds)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if !math.IsInf(p.Low, -1) || p.High != -5 {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestParamsDefaultRange(t *testing.T) {
	ds, err := dataset.New(
		[]string{"City", "Country", "AQI Value", "lat", "lng"},
		[][]string{{"A", "US", "50", "1", "1"}, {"B", "FR", "150", "2", "2"}},
		dataset.DefaultOptions(),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var f filterFlags
	c := newParamsCmd(&f)
	_ = c.Flags().Set("high", "100")
	_, p, err := f.params(c, ds)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Column != catalog.ColAQI || p.Low != 50 || p.High != 100 {
		t.Fatalf("unexpected params: %+v", p)
	}
}
