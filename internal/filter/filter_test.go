package filter

import (
	"math"
	"strings"
	"testing"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
)

func load(t *testing.T, rows ...string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(strings.Join(rows, "\n")), "test.csv", dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return ds
}

func sample(t *testing.T) *dataset.Dataset {
	return load(t,
		"City,Country,AQI Value,PM2.5 AQI Value,AQI Category,lat,lng",
		"A,US,50,40,Good,1,1",
		"B,US,150,120,Unhealthy for Sensitive Groups,2,2",
		"C,FR,80,80,Moderate,3,3",
		"D,FR,,10,,4,4",
		"E,IT,300,300,Hazardous,5,5",
	)
}

func cities(v View) string {
	var out []string
	for _, r := range v.Records {
		out = append(out, r.City)
	}
	return strings.Join(out, ",")
}

func TestApplyRangeExample(t *testing.T) {
	ds := load(t,
		"City,Country,AQI Value,lat,lng",
		"A,US,50,0,0",
		"B,US,150,0,1",
		"C,FR,80,0,2",
	)
	v := Apply(ds, Params{Column: catalog.ColAQI, Low: 60, High: 200})
	if got := cities(v); got != "B,C" {
		t.Fatalf("expected B,C got %s", got)
	}
}

func TestApplyRangeInclusive(t *testing.T) {
	ds := sample(t)
	v := Apply(ds, Params{Column: catalog.ColAQI, Low: 50, High: 150})
	if got := cities(v); got != "A,B" {
		t.Fatalf("expected A,B got %s", got)
	}
	for _, r := range v.Records {
		x := r.Value(catalog.ColAQI)
		if x < 50 || x > 150 {
			t.Fatalf("value %v outside range", x)
		}
	}
}

func TestApplyMissingValueNeverMatchesRange(t *testing.T) {
	ds := sample(t)
	v := Apply(ds, Params{Column: catalog.ColAQI, Low: math.Inf(-1), High: math.Inf(1)})
	if strings.Contains(cities(v), "D") {
		t.Fatalf("record with missing AQI should not match a range: %s", cities(v))
	}
}

func TestEmptyCountrySelectionIsPassThrough(t *testing.T) {
	ds := sample(t)
	lo, hi, ok := DefaultRange(ds, catalog.ColPM25)
	if !ok {
		t.Fatalf("no default range")
	}
	all := Apply(ds, Params{Column: catalog.ColPM25, Low: lo, High: hi})
	none := Apply(ds, Params{Column: catalog.ColPM25, Low: lo, High: hi, Countries: []string{}})
	if cities(all) != cities(none) {
		t.Fatalf("empty country selection changed the result: %s vs %s", cities(all), cities(none))
	}
	fr := Apply(ds, Params{Column: catalog.ColPM25, Low: lo, High: hi, Countries: []string{"FR"}})
	if got := cities(fr); got != "C" {
		t.Fatalf("expected C got %s", got)
	}
}

func TestEmptyCategorySelectionDefaultsToAllPresent(t *testing.T) {
	ds := sample(t)
	v := Apply(ds, Params{})
	// D has no category and still passes the default selection.
	if got := cities(v); got != "A,B,C,D,E" {
		t.Fatalf("expected A,B,C,D,E got %s", got)
	}
	explicit := Apply(ds, Params{Categories: []string{"Good", "Hazardous"}})
	if got := cities(explicit); got != "A,E" {
		t.Fatalf("expected A,E got %s", got)
	}
}

func TestBlankCategoryKeptWithoutSelection(t *testing.T) {
	ds := load(t,
		"City,Country,AQI Value,AQI Category,lat,lng",
		"A,US,50,Good,1,1",
		"B,US,60,,2,2",
	)
	v := Apply(ds, Params{Column: catalog.ColAQI, Low: 0, High: 100})
	if got := cities(v); got != "A,B" {
		t.Fatalf("expected A,B got %s", got)
	}
	if got := cities(Apply(ds, Params{Categories: []string{"Good"}})); got != "A" {
		t.Fatalf("expected A got %s", got)
	}
}

func TestNoCategoryColumnDoesNotFilter(t *testing.T) {
	ds := load(t, "City,Country,lat,lng", "A,US,1,1", "B,FR,2,2")
	if got := cities(Apply(ds, Params{})); got != "A,B" {
		t.Fatalf("expected A,B got %s", got)
	}
}

func TestCitiesAndComposition(t *testing.T) {
	ds := sample(t)
	p := Params{Column: catalog.ColAQI, Low: 0, High: 500, Countries: []string{"US", "FR"}, Cities: []string{"B", "C", "E"}}
	if got := cities(Apply(ds, p)); got != "B,C" {
		t.Fatalf("expected B,C got %s", got)
	}
	// Applying the predicates one at a time in either order gives the same rows.
	a := ApplyView(Apply(ds, Params{Cities: p.Cities}), Params{Column: p.Column, Low: p.Low, High: p.High, Countries: p.Countries})
	b := ApplyView(Apply(ds, Params{Countries: p.Countries}), Params{Column: p.Column, Low: p.Low, High: p.High, Cities: p.Cities})
	if cities(a) != "B,C" || cities(b) != "B,C" {
		t.Fatalf("order dependent result: %s / %s", cities(a), cities(b))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	ds := sample(t)
	params := []Params{
		{Column: catalog.ColAQI, Low: 60, High: 200},
		{Countries: []string{"US"}},
		{Column: catalog.ColPM25, Low: 0, High: 100, Categories: []string{"Good", "Moderate"}},
		{},
	}
	for _, p := range params {
		once := Apply(ds, p)
		twice := ApplyView(once, p)
		if cities(once) != cities(twice) {
			t.Fatalf("%+v not idempotent: %s vs %s", p, cities(once), cities(twice))
		}
	}
}

func TestApplyDoesNotMutateDataset(t *testing.T) {
	ds := sample(t)
	before := len(ds.Records)
	_ = Apply(ds, Params{Countries: []string{"US"}})
	if len(ds.Records) != before || ds.Records[0].City != "A" {
		t.Fatalf("dataset modified by filtering")
	}
}

func TestEmptyResult(t *testing.T) {
	ds := sample(t)
	v := Apply(ds, Params{Column: catalog.ColAQI, Low: 1000, High: 2000})
	if !v.Empty() || v.Check() != ErrEmptyResult {
		t.Fatalf("expected empty view with ErrEmptyResult")
	}
	if len(v.Columns) == 0 {
		t.Fatalf("empty view should keep the column list")
	}
}

func TestDefaultRange(t *testing.T) {
	ds := sample(t)
	lo, hi, ok := DefaultRange(ds, catalog.ColAQI)
	if !ok || lo != 50 || hi != 300 {
		t.Fatalf("DefaultRange = %v,%v,%v", lo, hi, ok)
	}
	if _, _, ok := DefaultRange(ds, "Nope"); ok {
		t.Fatalf("expected no range for unknown column")
	}
}

func TestOptionsAndIntersect(t *testing.T) {
	ds := sample(t)
	c := Options(ds)
	if strings.Join(c.Countries, ",") != "FR,IT,US" {
		t.Fatalf("countries = %v", c.Countries)
	}
	got := Intersect([]string{"US", "China", "FR"}, c.Countries)
	if strings.Join(got, ",") != "US,FR" {
		t.Fatalf("intersect = %v", got)
	}
}
