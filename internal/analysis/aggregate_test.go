package analysis

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
)

func load(t *testing.T, rows ...string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(strings.Join(rows, "\n")), "aq.csv", dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return ds
}

func exampleView(t *testing.T) filter.View {
	ds := load(t,
		"City,Country,AQI Value,lat,lng",
		"A,US,50,0,0",
		"B,US,150,0,1",
		"C,FR,80,0,2",
	)
	return filter.Apply(ds, filter.Params{Column: catalog.ColAQI, Low: 60, High: 200})
}

func TestSummarizeExample(t *testing.T) {
	s := Summarize(exampleView(t), catalog.ColAQI)
	if s.Count != 2 || s.Mean != 115 || s.Min != 80 || s.Max != 150 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.Format(s.Mean) != "115.0" {
		t.Fatalf("format = %s", s.Format(s.Mean))
	}
}

func TestGroupMeansExample(t *testing.T) {
	got := GroupMeans(exampleView(t), catalog.ColCountry, catalog.ColAQI)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %+v", got)
	}
	if got[0].Key != "FR" || got[0].Mean != 80 || got[1].Key != "US" || got[1].Mean != 150 {
		t.Fatalf("unexpected groups: %+v", got)
	}
}

func TestGroupMeansCoversEveryKey(t *testing.T) {
	ds := load(t,
		"City,Country,AQI Value,lat,lng",
		"A,US,50,0,0",
		"B,US,,0,1",
		"C,FR,80,0,2",
		"D,DE,,0,3",
	)
	v := filter.All(ds)
	got := GroupMeans(v, catalog.ColCountry, catalog.ColAQI)
	var keys []string
	for _, g := range got {
		keys = append(keys, g.Key)
	}
	want := ds.Distinct(catalog.ColCountry)
	sort.Strings(want)
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v want %v", keys, want)
	}
	if got[0].Key != "DE" || got[0].Count != 0 {
		t.Fatalf("DE should have no values: %+v", got[0])
	}
	b, err := json.Marshal(got[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"mean":null`) {
		t.Fatalf("json = %s", b)
	}
}

func TestEmptyViewDegrades(t *testing.T) {
	ds := load(t, "City,Country,AQI Value,AQI Category,lat,lng", "A,US,50,Good,0,0")
	v := filter.Apply(ds, filter.Params{Column: catalog.ColAQI, Low: 100, High: 200})
	s := Summarize(v, catalog.ColAQI)
	if s.Valid() || s.Format(s.Mean) != "N/A" {
		t.Fatalf("expected N/A stats, got %+v", s)
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"count":0,"mean":null,"min":null,"max":null}` {
		t.Fatalf("json = %s", b)
	}
	if got := TopN(v, catalog.ColAQI, 10); len(got) != 0 {
		t.Fatalf("expected empty top-n, got %d", len(got))
	}
	if got := CategoryCounts(v); len(got) != 0 {
		t.Fatalf("expected empty counts, got %+v", got)
	}
	if got := GroupMeans(v, catalog.ColCountry, catalog.ColAQI); len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}

func TestTopN(t *testing.T) {
	ds := load(t,
		"City,Country,AQI Value,lat,lng",
		"A,US,50,0,0",
		"B,US,150,0,1",
		"C,FR,80,0,2",
		"D,FR,150,0,3",
		"E,IT,,0,4",
		"F,IT,10,0,5",
	)
	v := filter.All(ds)
	cases := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "B"},
		{3, "B,D,C"},
		{10, "B,D,C,A,F"},
	}
	for _, tc := range cases {
		got := TopN(v, catalog.ColAQI, tc.n)
		var names []string
		for i, r := range got {
			names = append(names, r.City)
			if i > 0 && r.Value(catalog.ColAQI) > got[i-1].Value(catalog.ColAQI) {
				t.Fatalf("not descending at %d", i)
			}
		}
		if strings.Join(names, ",") != tc.want {
			t.Fatalf("TopN(%d) = %v want %s", tc.n, names, tc.want)
		}
	}
}

func TestCategoryCounts(t *testing.T) {
	ds := load(t,
		"City,AQI Category,lat,lng",
		"A,Moderate,0,0",
		"B,Good,0,1",
		"C,Moderate,0,2",
		"D,Hazardous,0,3",
		"E,Smoke,0,4",
	)
	got := CategoryCounts(filter.All(ds))
	want := []CategoryCount{{"Good", 1}, {"Moderate", 2}, {"Hazardous", 1}, {"Smoke", 1}}
	if len(got) != len(want) {
		t.Fatalf("counts = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("counts[%d] = %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, math.NaN()}, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 11 {
		t.Fatalf("expected 11 counted values, got %d", total)
	}
	if bins[0].Lo != 0 || bins[4].Hi != 10 || bins[4].Count != 3 {
		t.Fatalf("unexpected bins: %+v", bins)
	}

	flat := Histogram([]float64{7, 7, 7}, 4)
	if flat[0].Lo != 6.5 || flat[3].Hi != 7.5 {
		t.Fatalf("constant series bins: %+v", flat)
	}
	if Histogram(nil, 20) != nil || Histogram([]float64{1}, 0) != nil {
		t.Fatalf("expected nil histogram")
	}
}

func TestAQIColumns(t *testing.T) {
	got := AQIColumns([]string{"Country", "AQI Value", "lat", "PM2.5 AQI Category"})
	if strings.Join(got, "|") != "AQI Value|PM2.5 AQI Category" {
		t.Fatalf("aqi columns = %v", got)
	}
}
