package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, header []string, rows ...[]Cell) *Table {
	t.Helper()
	tb, err := New(header, rows)
	require.NoError(t, err)
	return tb
}

func TestCell_Kinds(t *testing.T) {
	t.Parallel()

	assert.True(t, Missing().IsMissing())
	assert.True(t, Cell{}.IsMissing())
	assert.True(t, Number(math.NaN()).IsMissing())

	s, ok := Text("bl").Text()
	assert.True(t, ok)
	assert.Equal(t, "bl", s)

	f, ok := Number(245.6).Float()
	assert.True(t, ok)
	assert.Equal(t, 245.6, f)

	assert.Equal(t, "", Missing().String())
	assert.Equal(t, "80", Number(80).String())
	assert.Equal(t, "0.5", Number(0.5).String())
	assert.True(t, Text("x").Equal(Text("x")))
	assert.False(t, Text("1").Equal(Number(1)))
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"A", "A"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = New([]string{"A", "B"}, [][]Cell{{Text("1")}})
	assert.ErrorIs(t, err, ErrShape)
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	orig := mustTable(t, []string{"A"}, []Cell{Text("x")})
	clone := orig.Clone()

	mapped, err := clone.MapColumn("A", func(int, Cell) Cell { return Text("y") })
	require.NoError(t, err)

	c, err := orig.Cell(0, "A")
	require.NoError(t, err)
	assert.True(t, c.Equal(Text("x")))

	c, err = mapped.Cell(0, "A")
	require.NoError(t, err)
	assert.True(t, c.Equal(Text("y")))
}

func TestDrop(t *testing.T) {
	t.Parallel()

	tb := mustTable(t, []string{"A", "B", "C"}, []Cell{Text("1"), Text("2"), Text("3")})
	out, err := tb.Drop("B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, out.Columns())
	assert.Equal(t, []string{"A", "B", "C"}, tb.Columns())

	_, err = tb.Drop("Z")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestInsertAfter(t *testing.T) {
	t.Parallel()

	tb := mustTable(t, []string{"A", "B"}, []Cell{Text("1"), Text("2")})
	out, err := tb.InsertAfter("A", "A2", []Cell{Text("x")})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A2", "B"}, out.Columns())
	assert.Equal(t, 2, tb.NumColumns())

	_, err = tb.InsertAfter("A", "B", []Cell{Text("x")})
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = tb.InsertAfter("missing", "X", []Cell{Text("x")})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = tb.InsertAfter("A", "X", nil)
	assert.ErrorIs(t, err, ErrShape)
}

func TestMapCells(t *testing.T) {
	t.Parallel()

	tb := mustTable(t, []string{"A", "B"},
		[]Cell{Text("Unknown"), Text("m0")},
		[]Cell{Missing(), Text("x")},
	)
	out := tb.MapCells(func(c Cell) Cell {
		if s, ok := c.Text(); ok && s == "Unknown" {
			return Missing()
		}
		return c
	})

	c, _ := out.Cell(0, "A")
	assert.True(t, c.IsMissing())
	c, _ = tb.Cell(0, "A")
	assert.False(t, c.IsMissing())
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	tb := mustTable(t, []string{"N", "S"},
		[]Cell{Text(" 80 "), Text("CN")},
		[]Cell{Missing(), Missing()},
	)

	out, err := tb.Coerce("N", Float64)
	require.NoError(t, err)
	d, _ := out.Dtype("N")
	assert.Equal(t, Float64, d)
	c, _ := out.Cell(0, "N")
	f, ok := c.Float()
	assert.True(t, ok)
	assert.Equal(t, 80.0, f)
	c, _ = out.Cell(1, "N")
	assert.True(t, c.IsMissing())

	back, err := out.Coerce("N", String)
	require.NoError(t, err)
	c, _ = back.Cell(0, "N")
	assert.True(t, c.Equal(Text("80")))

	d, _ = tb.Dtype("N")
	assert.Equal(t, Object, d)
}

func TestCoerce_Failure(t *testing.T) {
	t.Parallel()

	tb := mustTable(t, []string{"N"}, []Cell{Text("1")}, []Cell{Text("CN")})
	_, err := tb.Coerce("N", Float64)

	var cellErr *CellError
	require.True(t, errors.As(err, &cellErr))
	assert.Equal(t, "N", cellErr.Column)
	assert.Equal(t, 1, cellErr.Row)
	assert.Equal(t, "CN", cellErr.Value)
	assert.Equal(t, Float64, cellErr.Target)

	_, err = tb.Coerce("Z", Float64)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestParseDtype(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Dtype{"object": Object, "string": String, "float": Float64, "float64": Float64} {
		got, err := ParseDtype(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseDtype("int8")
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	in := "RID,ABETA,DX\n1,<80,CN\n2,,NA\n"
	tb, err := ReadCSV(strings.NewReader(in), func(s string) bool { return s == "" || s == "NA" })
	require.NoError(t, err)

	assert.Equal(t, []string{"RID", "ABETA", "DX"}, tb.Columns())
	assert.Equal(t, 2, tb.NumRows())
	c, _ := tb.Cell(0, "ABETA")
	assert.True(t, c.Equal(Text("<80")))
	c, _ = tb.Cell(1, "ABETA")
	assert.True(t, c.IsMissing())
	c, _ = tb.Cell(1, "DX")
	assert.True(t, c.IsMissing())
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader(""), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ReadCSV(strings.NewReader("A,B\n1\n"), nil)
	assert.ErrorIs(t, err, csv.ErrFieldCount)

	_, err = ReadCSV(strings.NewReader("A,A\n1,2\n"), nil)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	t.Parallel()

	tb, err := ReadCSV(strings.NewReader("A,B\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tb.NumRows())
	assert.Equal(t, 2, tb.NumColumns())
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	tb := mustTable(t, []string{"A", "B"},
		[]Cell{Text("bl"), Number(1700)},
		[]Cell{Missing(), Number(245.6)},
	)
	var buf bytes.Buffer
	require.NoError(t, tb.WriteCSV(&buf))
	assert.Equal(t, "A,B\nbl,1700\n,245.6\n", buf.String())
}
