package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/adniprep/internal/prep"
)

// WriteCensoringChart renders an HTML page with one stacked bar per
// biomarker showing its Low, Mid, High and missing counts.
func WriteCensoringChart(w io.Writer, sums []prep.CensoringSummary) error {
	x := make([]string, len(sums))
	low := make([]opts.BarData, len(sums))
	mid := make([]opts.BarData, len(sums))
	high := make([]opts.BarData, len(sums))
	missing := make([]opts.BarData, len(sums))
	for i, s := range sums {
		x[i] = s.Column
		low[i] = opts.BarData{Value: s.Low}
		mid[i] = opts.BarData{Value: s.Mid}
		high[i] = opts.BarData{Value: s.High}
		missing[i] = opts.BarData{Value: s.Missing}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "CSF censoring status", Subtitle: fmt.Sprintf("%d biomarkers", len(sums))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	stacked := charts.WithBarChartOpts(opts.BarChart{Stack: "status"})
	bar.SetXAxis(x).
		AddSeries(prep.StatusLow, low, stacked).
		AddSeries(prep.StatusMid, mid, stacked).
		AddSeries(prep.StatusHigh, high, stacked).
		AddSeries("Missing", missing, stacked)

	page := components.NewPage()
	page.PageTitle = "adniprep censoring"
	page.AddCharts(bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}
