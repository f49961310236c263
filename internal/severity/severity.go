// Package severity encodes AQI category text as an ordinal level.
package severity

import (
	"strconv"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
)

// Level is an ordinal severity code. Unknown marks text outside the scale.
type Level int

// Unknown is the level of unmapped category text.
const Unknown Level = 0

// Valid reports whether the level came from the scale.
func (l Level) Valid() bool { return l != Unknown }

func (l Level) String() string {
	if l == Unknown {
		return "N/A"
	}
	return strconv.Itoa(int(l))
}

// MarshalJSON encodes Unknown as null.
func (l Level) MarshalJSON() ([]byte, error) {
	if l == Unknown {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// Encoder maps category names to levels using a fixed scale.
type Encoder struct {
	levels map[string]Level
	order  []string
}

// NewEncoder builds an encoder for the given scale.
func NewEncoder(scale catalog.Scale) *Encoder {
	e := &Encoder{levels: make(map[string]Level, len(scale))}
	for _, g := range scale {
		e.levels[g.Name] = Level(g.Level)
		e.order = append(e.order, g.Name)
	}
	return e
}

// Default encodes with the six level AQI scale.
var Default = NewEncoder(catalog.Severity)

// Encode returns the level of a category, or Unknown.
func (e *Encoder) Encode(category string) Level {
	if l, ok := e.levels[strings.TrimSpace(category)]; ok {
		return l
	}
	return Unknown
}

// Encode uses the default encoder.
func Encode(category string) Level { return Default.Encode(category) }

// Code is one row of the level code table.
type Code struct {
	City     string `json:"city"`
	Category string `json:"category"`
	Level    Level  `json:"level"`
}

// Codes encodes the category of every record in the view.
func (e *Encoder) Codes(v filter.View) []Code {
	out := make([]Code, 0, len(v.Records))
	for _, r := range v.Records {
		out = append(out, Code{City: r.City, Category: r.Category, Level: e.Encode(r.Category)})
	}
	return out
}

// Less orders category names by level; unknown names sort last by name.
func (e *Encoder) Less(a, b string) bool {
	la, lb := e.Encode(a), e.Encode(b)
	switch {
	case la.Valid() && lb.Valid():
		return la < lb
	case la.Valid():
		return true
	case lb.Valid():
		return false
	}
	return a < b
}
