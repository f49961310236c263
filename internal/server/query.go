package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/gin-gonic/gin"
)

// selection is the user input of one request. Main holds the range and
// country predicates that drive the table, metrics and charts; Map holds
// the city and category predicates of the map and the downloads, which
// apply to the whole dataset.
type selection struct {
	Pollutant catalog.Pollutant
	Main      filter.Params
	Map       filter.Params
	Submitted bool
}

// parseSelection reads the query. Missing bounds, or bounds whose range_for
// names another pollutant, default to the column's min and max over the
// dataset; an unsubmitted form preselects the
// configured countries that exist in the dataset.
func parseSelection(c *gin.Context, ds *dataset.Dataset, defaultCountries []string) (selection, error) {
	var sel selection
	pol, err := catalog.Pollutants.Resolve(c.Query("pollutant"))
	if err != nil {
		return sel, err
	}
	sel.Pollutant = pol
	sel.Submitted = c.Query("submitted") == "1"

	low, high, ok := filter.DefaultRange(ds, pol.Column)
	if !ok {
		low, high = math.Inf(-1), math.Inf(1)
	}
	// Bounds submitted for another pollutant do not carry over.
	lowQ, highQ := c.Query("low"), c.Query("high")
	if rf := strings.TrimSpace(c.Query("range_for")); rf != "" {
		if prev, found := catalog.Pollutants.Lookup(rf); !found || prev.Key != pol.Key {
			lowQ, highQ = "", ""
		}
	}
	if v := strings.TrimSpace(lowQ); v != "" {
		if low, err = strconv.ParseFloat(v, 64); err != nil {
			return sel, fmt.Errorf("invalid low bound %q", v)
		}
		ok = true
	}
	if v := strings.TrimSpace(highQ); v != "" {
		if high, err = strconv.ParseFloat(v, 64); err != nil {
			return sel, fmt.Errorf("invalid high bound %q", v)
		}
		ok = true
	}
	if ok && low > high {
		return sel, fmt.Errorf("low bound %g exceeds high bound %g", low, high)
	}
	if ok {
		sel.Main.Column, sel.Main.Low, sel.Main.High = pol.Column, low, high
	}

	countries := nonEmpty(c.QueryArray("country"))
	if len(countries) == 0 && !sel.Submitted {
		countries = filter.Intersect(defaultCountries, ds.Distinct(catalog.ColCountry))
	}
	sel.Main.Countries = countries
	sel.Map.Cities = nonEmpty(c.QueryArray("city"))
	sel.Map.Categories = nonEmpty(c.QueryArray("category"))
	return sel, nil
}

// Query encodes the selection so that links reproduce it exactly.
func (s selection) Query() url.Values {
	q := url.Values{}
	q.Set("pollutant", s.Pollutant.Key)
	if s.Main.Column != "" {
		if !math.IsInf(s.Main.Low, 0) {
			q.Set("low", formatBound(s.Main.Low))
		}
		if !math.IsInf(s.Main.High, 0) {
			q.Set("high", formatBound(s.Main.High))
		}
		q.Set("range_for", s.Pollutant.Key)
	}
	for _, v := range s.Main.Countries {
		q.Add("country", v)
	}
	for _, v := range s.Map.Cities {
		q.Add("city", v)
	}
	for _, v := range s.Map.Categories {
		q.Add("category", v)
	}
	q.Set("submitted", "1")
	return q
}

func (s selection) link(path string) string {
	return path + "?" + s.Query().Encode()
}

func formatBound(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
