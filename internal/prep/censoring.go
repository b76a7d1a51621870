package prep

import (
	"strings"

	"github.com/banshee-data/adniprep/internal/table"
)

// Censoring status values and the suffix of the status column.
const (
	StatusLow        = "Low"
	StatusMid        = "Mid"
	StatusHigh       = "High"
	LowMidHighSuffix = "_LowMidHigh"
)

// CensoringSummary counts censoring status for one biomarker column.
type CensoringSummary struct {
	Column  string
	Low     int
	Mid     int
	High    int
	Missing int
}

// ConvertCSFToLowMidHigh splits each censored biomarker column C into the
// measurement with its "<" or ">" marker removed and a new C_LowMidHigh
// column placed right after C. A missing measurement gives a missing status.
func (p *Preparer) ConvertCSFToLowMidHigh() error {
	if p.df == nil {
		return ErrNotInitialized
	}

	df := p.df
	var summaries []CensoringSummary
	for _, col := range p.cfg.GetCensoredColumns() {
		values, err := df.Column(col)
		if err != nil {
			return tableError(col, err)
		}

		summary := CensoringSummary{Column: col}
		status := make([]table.Cell, len(values))
		for i, c := range values {
			measurement, s := splitCensored(c)
			values[i] = measurement
			switch s {
			case StatusLow:
				summary.Low++
			case StatusHigh:
				summary.High++
			case StatusMid:
				summary.Mid++
			default:
				summary.Missing++
				continue
			}
			status[i] = table.Text(s)
		}

		df, err = df.MapColumn(col, func(i int, _ table.Cell) table.Cell { return values[i] })
		if err != nil {
			return tableError(col, err)
		}
		statusCol := col + LowMidHighSuffix
		df, err = df.InsertAfter(col, statusCol, status)
		if err != nil {
			return tableError(statusCol, err)
		}
		summaries = append(summaries, summary)
	}

	p.df = df
	p.censoring = summaries
	return nil
}

// splitCensored returns the measurement without its censoring marker and the
// censoring status. Missing cells return an empty status. A marker with
// nothing after it leaves a missing measurement.
func splitCensored(c table.Cell) (table.Cell, string) {
	if c.IsMissing() {
		return c, ""
	}
	s := c.String()
	var status string
	switch {
	case strings.HasPrefix(s, "<"):
		status = StatusLow
	case strings.HasPrefix(s, ">"):
		status = StatusHigh
	default:
		return c, StatusMid
	}
	rest := s[1:]
	if rest == "" {
		return table.Missing(), status
	}
	return table.Text(rest), status
}
