package dataset

import (
	"fmt"
	"strings"
)

// LoadError reports an unreadable or malformed input file. It is not fatal:
// loaders return an empty Dataset alongside it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load error"
	}
	if e.Path != "" {
		return fmt.Sprintf("error loading data from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("error loading data: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError names the required columns a dataset lacks. It halts the
// session: nothing downstream runs on an invalid dataset.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing expected columns: %s", strings.Join(e.Missing, ", "))
}
