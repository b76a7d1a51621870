package table

import (
	"math"
	"strconv"
)

type cellKind uint8

const (
	kindMissing cellKind = iota
	kindText
	kindNumber
)

// Cell is a single table value. A cell is either missing, text, or a number;
// the zero value is missing.
type Cell struct {
	kind cellKind
	text string
	num  float64
}

// Missing returns a missing cell.
func Missing() Cell { return Cell{} }

// Text returns a text cell holding s.
func Text(s string) Cell { return Cell{kind: kindText, text: s} }

// Number returns a numeric cell. NaN is stored as missing.
func Number(f float64) Cell {
	if math.IsNaN(f) {
		return Cell{}
	}
	return Cell{kind: kindNumber, num: f}
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.kind == kindMissing }

// IsNumber reports whether the cell holds a float.
func (c Cell) IsNumber() bool { return c.kind == kindNumber }

// Text returns the text value and whether the cell holds text.
func (c Cell) Text() (string, bool) {
	return c.text, c.kind == kindText
}

// Float returns the numeric value and whether the cell holds a number.
func (c Cell) Float() (float64, bool) {
	return c.num, c.kind == kindNumber
}

// String renders the cell for CSV output. Missing cells render empty and
// numbers use the shortest decimal representation.
func (c Cell) String() string {
	switch c.kind {
	case kindText:
		return c.text
	case kindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and value.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case kindText:
		return c.text == o.text
	case kindNumber:
		return c.num == o.num
	default:
		return true
	}
}
