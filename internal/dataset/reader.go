package dataset

import (
	"io"
	"path/filepath"
	"strings"
)

// Options controls how tables are read and which columns are numeric.
type Options struct {
	// Delimiter for delimited text. If 0, chosen by file extension.
	Delimiter rune
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string
	// NumericColumns are parsed into Record.Values.
	NumericColumns []string
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// TableReader reads a raw table (header plus rows) from a stream.
type TableReader interface {
	CanRead(name string) bool
	ReadTable(r io.Reader, name string, opt Options) (header []string, rows [][]string, err error)
}

var readers []TableReader

// RegisterReader adds a table reader to the registry. Later registrations
// are consulted first.
func RegisterReader(tr TableReader) {
	readers = append([]TableReader{tr}, readers...)
}

func readerFor(name string) TableReader {
	for _, tr := range readers {
		if tr.CanRead(name) {
			return tr
		}
	}
	// Unknown extensions are read as comma separated text.
	return delimitedReader{}
}

func init() {
	RegisterReader(delimitedReader{})
	RegisterReader(xlsxReader{})
}

func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
