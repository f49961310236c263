// Package catalog holds the fixed lookup tables shared by the filter,
// encoder and presentation layers.
package catalog

import (
	"fmt"
	"strings"
)

// Column names of the air quality dataset.
const (
	ColCity     = "City"
	ColCountry  = "Country"
	ColLat      = "lat"
	ColLng      = "lng"
	ColAQI      = "AQI Value"
	ColCO       = "CO AQI Value"
	ColOzone    = "Ozone AQI Value"
	ColNO2      = "NO2 AQI Value"
	ColPM25     = "PM2.5 AQI Value"
	ColCategory = "AQI Category"
)

// Pollutant maps a human readable pollutant to its dataset column.
type Pollutant struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Column string `json:"column"`
}

// Selector is an ordered, read-only pollutant table.
type Selector []Pollutant

// Pollutants is the default selector. The first entry is the default choice.
var Pollutants = Selector{
	{Key: "aqi", Label: "Overall AQI", Column: ColAQI},
	{Key: "co", Label: "Carbon Monoxide", Column: ColCO},
	{Key: "ozone", Label: "Ozone", Column: ColOzone},
	{Key: "no2", Label: "Nitrogen Dioxide", Column: ColNO2},
	{Key: "pm25", Label: "PM2.5", Column: ColPM25},
}

// RequiredColumns must be present for a dataset to be usable.
var RequiredColumns = []string{
	ColCity, ColCountry, ColLat, ColLng,
	ColAQI, ColCO, ColOzone, ColNO2, ColPM25,
	ColCategory,
}

// Default returns the first pollutant of the table.
func (s Selector) Default() Pollutant {
	if len(s) == 0 {
		return Pollutant{}
	}
	return s[0]
}

// Lookup resolves a key, label (case-insensitive) or exact column name.
func (s Selector) Lookup(name string) (Pollutant, bool) {
	n := strings.TrimSpace(name)
	for _, p := range s {
		if strings.EqualFold(p.Key, n) || strings.EqualFold(p.Label, n) || p.Column == n {
			return p, true
		}
	}
	return Pollutant{}, false
}

// Resolve is Lookup with an error naming the accepted keys. An empty name
// selects the default pollutant.
func (s Selector) Resolve(name string) (Pollutant, error) {
	if strings.TrimSpace(name) == "" {
		return s.Default(), nil
	}
	if p, ok := s.Lookup(name); ok {
		return p, nil
	}
	return Pollutant{}, fmt.Errorf("unknown pollutant %q (use one of: %s)", name, strings.Join(s.Keys(), ", "))
}

// Keys lists the short keys in table order.
func (s Selector) Keys() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Key
	}
	return out
}

// Columns lists the pollutant columns in table order.
func (s Selector) Columns() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Column
	}
	return out
}
