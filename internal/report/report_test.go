package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/adniprep/internal/fsutil"
	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/prep"
	"github.com/banshee-data/adniprep/internal/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New([]string{"RID", "MMSE", "PIB"}, [][]table.Cell{
		{table.Text("1"), table.Text("30"), table.Missing()},
		{table.Text("2"), table.Text("28"), table.Missing()},
		{table.Text("3"), table.Missing(), table.Missing()},
		{table.Text("4"), table.Text("20"), table.Missing()},
	})
	require.NoError(t, err)
	tb, err = tb.Coerce("MMSE", table.Float64)
	require.NoError(t, err)
	tb, err = tb.Coerce("PIB", table.Float64)
	require.NoError(t, err)
	return tb
}

func TestSummarize(t *testing.T) {
	sums := Summarize(testTable(t))
	require.Len(t, sums, 2)

	mmse := sums[0]
	assert.Equal(t, "MMSE", mmse.Name)
	assert.Equal(t, 3, mmse.Count)
	assert.Equal(t, 1, mmse.Missing)
	assert.InDelta(t, 26.0, mmse.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(28), mmse.StdDev, 1e-9)
	assert.Equal(t, 20.0, mmse.Min)
	assert.Equal(t, 28.0, mmse.Median)
	assert.Equal(t, 30.0, mmse.Max)

	pib := sums[1]
	assert.Equal(t, 0, pib.Count)
	assert.Equal(t, 4, pib.Missing)
	assert.True(t, math.IsNaN(pib.Mean))
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, Summarize(testTable(t))))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Count,Missing,Mean,StdDev,Min,Median,Max", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "MMSE,3,1,26,"))
	assert.Equal(t, "PIB,0,4,,,,,", lines[2])
}

func TestMissingFractions(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 1}, MissingFractions(testTable(t)))

	empty, err := table.New([]string{"A"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, MissingFractions(empty))
}

func TestWriteMissingnessPlot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMissingnessPlot(&buf, testTable(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	empty, err := table.New(nil, nil)
	require.NoError(t, err)
	assert.Error(t, WriteMissingnessPlot(&buf, empty))
}

func TestWriteCensoringChart(t *testing.T) {
	var buf bytes.Buffer
	sums := []prep.CensoringSummary{
		{Column: "ABETA", Low: 1, Mid: 1, High: 1},
		{Column: "TAU", Mid: 1, High: 1, Missing: 1},
	}
	require.NoError(t, WriteCensoringChart(&buf, sums))

	html := buf.String()
	assert.Contains(t, html, "CSF censoring status")
	assert.Contains(t, html, "ABETA")
	assert.Contains(t, html, "TAU")
}

func TestWrite(t *testing.T) {
	monitoring.SetLogger(t.Logf)
	t.Cleanup(func() { monitoring.SetLogger(nil) })
	mfs := fsutil.NewMemoryFileSystem()

	err := Write(mfs, "/reports/run1", testTable(t), []prep.CensoringSummary{{Column: "ABETA", Mid: 4}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/reports/run1/censoring.html",
		"/reports/run1/missingness.png",
		"/reports/run1/summary.csv",
	}, mfs.Files())
}
