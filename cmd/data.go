package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/filter"
	"github.com/spf13/cobra"
)

// loadFlags control how an input file is parsed.
type loadFlags struct {
	delimiter string
	sheet     string
	decimal   string
	thousands string
}

func (l *loadFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&l.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default from config or file extension)")
	c.Flags().StringVar(&l.sheet, "sheet", "", "XLSX: sheet name to read (default from config or first sheet)")
	c.Flags().StringVar(&l.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&l.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
}

// options merges the flags over the configured defaults.
func (l *loadFlags) options() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	c, err := settings()
	if err != nil {
		return opt, err
	}
	delim := c.Delimiter
	if l.delimiter != "" {
		delim = l.delimiter
	}
	d := *c
	d.Delimiter = delim
	r, err := d.DelimiterRune()
	if err != nil {
		return opt, err
	}
	opt.Delimiter = r
	opt.Sheet = c.XLSXSheet
	if l.sheet != "" {
		opt.Sheet = l.sheet
	}
	// Locale separators
	switch strings.ToLower(strings.TrimSpace(l.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", l.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(l.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", l.thousands)
	}
	return opt, nil
}

// load reads and validates the file named by args, or data_path when no
// argument is given.
func (l *loadFlags) load(args []string) (*dataset.Dataset, error) {
	c, err := settings()
	if err != nil {
		return nil, err
	}
	path := c.DataPath
	if len(args) > 0 {
		path = args[0]
	}
	opt, err := l.options()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Open(path, opt)
	if err != nil {
		return nil, err
	}
	if err := dataset.Validate(ds, catalog.RequiredColumns); err != nil {
		return nil, err
	}
	return ds, nil
}

// filterFlags are the user selections shared by filter, summary and export.
type filterFlags struct {
	pollutant  string
	low, high  float64
	countries  []string
	cities     []string
	categories []string
}

func (f *filterFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.pollutant, "pollutant", "P", "", "pollutant: "+strings.Join(catalog.Pollutants.Keys(), "|")+" (default aqi)")
	c.Flags().Float64Var(&f.low, "low", 0, "lower bound, inclusive (default: column minimum)")
	c.Flags().Float64Var(&f.high, "high", 0, "upper bound, inclusive (default: column maximum)")
	c.Flags().StringArrayVar(&f.countries, "country", nil, "keep only these countries (repeatable)")
	c.Flags().StringArrayVar(&f.cities, "city", nil, "keep only these cities (repeatable)")
	c.Flags().StringArrayVar(&f.categories, "category", nil, "keep only these AQI categories (repeatable; default all present)")
}

// params resolves the selection against ds. Bounds that were not given
// default to the column's min and max over the whole dataset, or stay
// unbounded when the column has no numeric values.
func (f *filterFlags) params(cmd *cobra.Command, ds *dataset.Dataset) (catalog.Pollutant, filter.Params, error) {
	pol, err := catalog.Pollutants.Resolve(f.pollutant)
	if err != nil {
		return pol, filter.Params{}, err
	}
	p := filter.Params{
		Countries:  f.countries,
		Cities:     f.cities,
		Categories: f.categories,
	}
	low, high, ok := filter.DefaultRange(ds, pol.Column)
	if !ok {
		// No numeric values: an open side stays unbounded.
		low, high = math.Inf(-1), math.Inf(1)
	}
	if cmd.Flags().Changed("low") {
		low, ok = f.low, true
	}
	if cmd.Flags().Changed("high") {
		high, ok = f.high, true
	}
	if ok {
		if low > high {
			return pol, p, fmt.Errorf("--low %g exceeds --high %g", low, high)
		}
		p.Column, p.Low, p.High = pol.Column, low, high
	}
	return pol, p, nil
}

// warnEmpty reports an empty view on stderr; it is not an error.
func warnEmpty(cmd *cobra.Command, v filter.View) {
	if err := v.Check(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
	}
}
