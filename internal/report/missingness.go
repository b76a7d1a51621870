package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/adniprep/internal/table"
)

// MissingFractions returns, per column in table order, the fraction of rows
// whose cell is missing. A table with no rows reports zero everywhere.
func MissingFractions(tb *table.Table) []float64 {
	out := make([]float64, tb.NumColumns())
	if tb.NumRows() == 0 {
		return out
	}
	for j, name := range tb.Columns() {
		cells, _ := tb.Column(name)
		missing := 0
		for _, c := range cells {
			if c.IsMissing() {
				missing++
			}
		}
		out[j] = float64(missing) / float64(tb.NumRows())
	}
	return out
}

// WriteMissingnessPlot renders a PNG bar chart of MissingFractions.
func WriteMissingnessPlot(w io.Writer, tb *table.Table) error {
	if tb.NumColumns() == 0 {
		return errors.New("no columns to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Missing values per column (%d rows)", tb.NumRows())
	p.Y.Label.Text = "Fraction missing"
	p.Y.Min, p.Y.Max = 0, 1

	bars, err := plotter.NewBarChart(plotter.Values(MissingFractions(tb)), vg.Points(6))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(tb.Columns()...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	width := vg.Length(math.Max(14, float64(tb.NumColumns())*0.18)) * vg.Inch
	wt, err := p.WriterTo(width, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
