package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyInput is returned by ReadCSV when there is no header row.
var ErrEmptyInput = errors.New("no header row")

// ReadCSV parses comma-separated records into an object-typed table. The
// first record is the header. Fields for which isMissing returns true become
// missing cells; every other field is kept as text. A nil isMissing treats
// only the empty field as missing.
func ReadCSV(r io.Reader, isMissing func(string) bool) (*Table, error) {
	if isMissing == nil {
		isMissing = func(s string) bool { return s == "" }
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = append([]string(nil), header...)

	cols := make([]column, len(header))
	for j, name := range header {
		cols[j] = column{name: name, dtype: Object}
	}

	nrows := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", nrows+1, err)
		}
		for j, field := range rec {
			if isMissing(field) {
				cols[j].cells = append(cols[j].cells, Missing())
			} else {
				cols[j].cells = append(cols[j].cells, Text(field))
			}
		}
		nrows++
	}
	for j := range cols {
		if cols[j].cells == nil {
			cols[j].cells = []Cell{}
		}
	}
	return build(cols, nrows)
}

// WriteCSV writes the header and every row. Missing cells are written as
// empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	rec := make([]string, len(t.cols))
	for i := 0; i < t.nrows; i++ {
		for j, c := range t.cols {
			rec[j] = c.cells[i].String()
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
