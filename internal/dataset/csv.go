package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

type delimitedReader struct{}

func (delimitedReader) CanRead(name string) bool {
	switch extension(name) {
	case ".csv", ".tsv", ".tab", ".txt":
		return true
	}
	return false
}

func (delimitedReader) ReadTable(r io.Reader, name string, opt Options) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comma = sniffDelimiter(name, opt.Delimiter)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("no columns to parse from file")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func sniffDelimiter(name string, delim rune) rune {
	if delim != 0 {
		return delim
	}
	switch extension(name) {
	case ".tsv", ".tab":
		return '\t'
	}
	return ','
}
