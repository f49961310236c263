package filter

import (
	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
)

// Choices are the selectable values offered to the user.
type Choices struct {
	Countries  []string `json:"countries"`
	Cities     []string `json:"cities"`
	Categories []string `json:"categories"`
}

// Options lists the sorted distinct countries, cities and categories of a
// dataset.
func Options(ds *dataset.Dataset) Choices {
	return Choices{
		Countries:  ds.Distinct(catalog.ColCountry),
		Cities:     ds.Distinct(catalog.ColCity),
		Categories: ds.Distinct(catalog.ColCategory),
	}
}

// Intersect keeps the wanted values that are among the available ones,
// in the order they were wanted.
func Intersect(want, available []string) []string {
	avail := toSet(available)
	var out []string
	for _, w := range want {
		if _, ok := avail[w]; ok {
			out = append(out, w)
		}
	}
	return out
}
