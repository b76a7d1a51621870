package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/adniprep/internal/fsutil"
	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/prep"
	"github.com/banshee-data/adniprep/internal/table"
)

// Report file names within the report directory.
const (
	SummaryFile     = "summary.csv"
	MissingnessFile = "missingness.png"
	CensoringFile   = "censoring.html"
)

// Write creates dir if needed and writes the summary CSV, missingness plot
// and censoring chart into it.
func Write(fsys fsutil.FileSystem, dir string, tb *table.Table, censoring []prep.CensoringSummary) error {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{SummaryFile, func(w io.Writer) error { return WriteSummaryCSV(w, Summarize(tb)) }},
		{MissingnessFile, func(w io.Writer) error { return WriteMissingnessPlot(w, tb) }},
		{CensoringFile, func(w io.Writer) error { return WriteCensoringChart(w, censoring) }},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(fsys, path, f.write); err != nil {
			return err
		}
		monitoring.Logf("[report] wrote %s", path)
	}
	return nil
}

func writeFile(fsys fsutil.FileSystem, path string, write func(io.Writer) error) (err error) {
	out, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := write(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
