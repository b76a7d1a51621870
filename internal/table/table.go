// Package table provides an immutable, column-oriented table of nullable
// cells. Every transformation returns a new Table; unchanged columns are
// shared between the old and new value, so callers must never write into a
// slice obtained from a Table.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is returned when a column name would appear twice.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrShape is returned when row or column lengths disagree.
	ErrShape = errors.New("inconsistent table shape")
)

// Dtype is the storage type of a column.
type Dtype uint8

const (
	// Object columns hold cells exactly as read.
	Object Dtype = iota
	// String columns hold text or missing cells only.
	String
	// Float64 columns hold numbers or missing cells only.
	Float64
)

func (d Dtype) String() string {
	switch d {
	case String:
		return "string"
	case Float64:
		return "float64"
	default:
		return "object"
	}
}

// ParseDtype converts a dtype name back into a Dtype. "float" is accepted
// as an alias for float64.
func ParseDtype(s string) (Dtype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "object":
		return Object, nil
	case "string", "str":
		return String, nil
	case "float64", "float":
		return Float64, nil
	}
	return Object, fmt.Errorf("unknown dtype %q", s)
}

// CellError describes a cell that cannot be represented in a target dtype.
type CellError struct {
	Column string
	Row    int
	Value  string
	Target Dtype
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("column %s row %d: cannot convert %q to %s: %v", e.Column, e.Row, e.Value, e.Target, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

type column struct {
	name  string
	dtype Dtype
	cells []Cell
}

// Table is an ordered set of equally long, uniquely named columns.
type Table struct {
	cols  []column
	index map[string]int
	nrows int
}

// New builds an object-typed table from a header and row-major records.
// The inputs are copied.
func New(header []string, rows [][]Cell) (*Table, error) {
	cols := make([]column, len(header))
	for j, name := range header {
		cols[j] = column{name: name, dtype: Object, cells: make([]Cell, len(rows))}
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d: %w", i, len(row), len(header), ErrShape)
		}
		for j, c := range row {
			cols[j].cells[i] = c
		}
	}
	return build(cols, len(rows))
}

func build(cols []column, nrows int) (*Table, error) {
	index := make(map[string]int, len(cols))
	for j, c := range cols {
		if _, dup := index[c.name]; dup {
			return nil, fmt.Errorf("%s: %w", c.name, ErrDuplicateColumn)
		}
		if len(c.cells) != nrows {
			return nil, fmt.Errorf("column %s has %d cells, want %d: %w", c.name, len(c.cells), nrows, ErrShape)
		}
		index[c.name] = j
	}
	return &Table{cols: cols, index: index, nrows: nrows}, nil
}

// derive returns a table sharing t's columns, with the column list copied so
// the caller may replace entries.
func (t *Table) derive() []column {
	cols := make([]column, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nrows }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for j, c := range t.cols {
		names[j] = c.name
	}
	return names
}

// Index returns the position of the named column.
func (t *Table) Index(name string) (int, bool) {
	j, ok := t.index[name]
	return j, ok
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Dtype returns the storage type of the named column.
func (t *Table) Dtype(name string) (Dtype, error) {
	j, ok := t.index[name]
	if !ok {
		return Object, fmt.Errorf("%s: %w", name, ErrColumnNotFound)
	}
	return t.cols[j].dtype, nil
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]Cell, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrColumnNotFound)
	}
	out := make([]Cell, t.nrows)
	copy(out, t.cols[j].cells)
	return out, nil
}

// Cell returns a single cell.
func (t *Table) Cell(row int, name string) (Cell, error) {
	j, ok := t.index[name]
	if !ok {
		return Cell{}, fmt.Errorf("%s: %w", name, ErrColumnNotFound)
	}
	if row < 0 || row >= t.nrows {
		return Cell{}, fmt.Errorf("row %d out of range [0,%d): %w", row, t.nrows, ErrShape)
	}
	return t.cols[j].cells[row], nil
}

// Row returns a copy of row i in column order.
func (t *Table) Row(i int) []Cell {
	out := make([]Cell, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.cells[i]
	}
	return out
}

// Clone returns a deep copy that shares no memory with t.
func (t *Table) Clone() *Table {
	cols := make([]column, len(t.cols))
	for j, c := range t.cols {
		cells := make([]Cell, len(c.cells))
		copy(cells, c.cells)
		cols[j] = column{name: c.name, dtype: c.dtype, cells: cells}
	}
	index := make(map[string]int, len(t.index))
	for k, v := range t.index {
		index[k] = v
	}
	return &Table{cols: cols, index: index, nrows: t.nrows}
}

// Drop returns a table without the named columns.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, fmt.Errorf("%s: %w", n, ErrColumnNotFound)
		}
		drop[n] = true
	}
	cols := make([]column, 0, len(t.cols)-len(drop))
	for _, c := range t.cols {
		if !drop[c.name] {
			cols = append(cols, c)
		}
	}
	return build(cols, t.nrows)
}

// InsertAfter returns a table with a new object column placed immediately
// to the right of anchor.
func (t *Table) InsertAfter(anchor, name string, cells []Cell) (*Table, error) {
	j, ok := t.index[anchor]
	if !ok {
		return nil, fmt.Errorf("%s: %w", anchor, ErrColumnNotFound)
	}
	if len(cells) != t.nrows {
		return nil, fmt.Errorf("column %s has %d cells, want %d: %w", name, len(cells), t.nrows, ErrShape)
	}
	owned := make([]Cell, len(cells))
	copy(owned, cells)

	cols := make([]column, 0, len(t.cols)+1)
	cols = append(cols, t.cols[:j+1]...)
	cols = append(cols, column{name: name, dtype: Object, cells: owned})
	cols = append(cols, t.cols[j+1:]...)
	return build(cols, t.nrows)
}

// MapCells returns a table with fn applied to every cell. Column dtypes are
// kept.
func (t *Table) MapCells(fn func(Cell) Cell) *Table {
	cols := t.derive()
	for j := range cols {
		cells := make([]Cell, t.nrows)
		for i, c := range cols[j].cells {
			cells[i] = fn(c)
		}
		cols[j].cells = cells
	}
	return &Table{cols: cols, index: t.index, nrows: t.nrows}
}

// MapColumn returns a table with fn applied to each cell of one column.
func (t *Table) MapColumn(name string, fn func(row int, c Cell) Cell) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrColumnNotFound)
	}
	cols := t.derive()
	cells := make([]Cell, t.nrows)
	for i, c := range cols[j].cells {
		cells[i] = fn(i, c)
	}
	cols[j].cells = cells
	return &Table{cols: cols, index: t.index, nrows: t.nrows}, nil
}

// Coerce returns a table with the named column converted to dtype d.
// Missing cells stay missing. Text is parsed as a float for Float64 and
// numbers are formatted for String; any text that does not parse yields a
// *CellError.
func (t *Table) Coerce(name string, d Dtype) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrColumnNotFound)
	}
	cols := t.derive()
	cells := make([]Cell, t.nrows)
	for i, c := range cols[j].cells {
		out, err := coerceCell(c, d)
		if err != nil {
			return nil, &CellError{Column: name, Row: i, Value: c.String(), Target: d, Err: err}
		}
		cells[i] = out
	}
	cols[j] = column{name: name, dtype: d, cells: cells}
	return &Table{cols: cols, index: t.index, nrows: t.nrows}, nil
}

func coerceCell(c Cell, d Dtype) (Cell, error) {
	if c.IsMissing() {
		return c, nil
	}
	switch d {
	case String:
		return Text(c.String()), nil
	case Float64:
		if f, ok := c.Float(); ok {
			return Number(f), nil
		}
		s, _ := c.Text()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Cell{}, err
		}
		return Number(f), nil
	default:
		return c, nil
	}
}
