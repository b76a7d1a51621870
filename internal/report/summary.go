// Package report renders optional artifacts describing a prepared table:
// numeric column summaries, a missingness plot and a censoring chart.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/adniprep/internal/table"
)

// ColumnSummary describes the distribution of one float64 column. Statistics
// are NaN when the column has no values (StdDev also needs two).
type ColumnSummary struct {
	Name    string
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Median  float64
	Max     float64
}

// Summarize returns a summary of every float64 column in table order.
func Summarize(tb *table.Table) []ColumnSummary {
	var out []ColumnSummary
	for _, name := range tb.Columns() {
		if d, _ := tb.Dtype(name); d != table.Float64 {
			continue
		}
		cells, _ := tb.Column(name)
		out = append(out, summarize(name, cells))
	}
	return out
}

func summarize(name string, cells []table.Cell) ColumnSummary {
	s := ColumnSummary{Name: name}
	xs := make([]float64, 0, len(cells))
	for _, c := range cells {
		if f, ok := c.Float(); ok {
			xs = append(xs, f)
		} else {
			s.Missing++
		}
	}
	s.Count = len(xs)

	nan := math.NaN()
	s.Mean, s.StdDev, s.Min, s.Median, s.Max = nan, nan, nan, nan, nan
	if len(xs) == 0 {
		return s
	}
	sort.Float64s(xs)
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	s.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	return s
}

var summaryHeader = []string{"Name", "Count", "Missing", "Mean", "StdDev", "Min", "Median", "Max"}

// WriteSummaryCSV writes summaries as CSV. NaN statistics are written as
// empty fields.
func WriteSummaryCSV(w io.Writer, sums []ColumnSummary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, s := range sums {
		rec := []string{
			s.Name, strconv.Itoa(s.Count), strconv.Itoa(s.Missing),
			formatStat(s.Mean), formatStat(s.StdDev), formatStat(s.Min), formatStat(s.Median), formatStat(s.Max),
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write summary for %s: %w", s.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatStat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}
