// Package testutil provides shared test helpers and a synthetic ADNIMERGE
// fixture.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ADNICoreColumns are the 60 leading ADNIMERGE columns kept by pruning, in
// export order.
var ADNICoreColumns = []string{
	"RID", "COLPROT", "ORIGPROT", "PTID", "SITE", "VISCODE", "EXAMDATE", "DX_bl",
	"AGE", "PTGENDER", "PTEDUCAT", "PTETHCAT", "PTRACCAT", "PTMARRY", "APOE4",
	"FDG", "PIB", "AV45", "ABETA", "TAU", "PTAU",
	"CDRSB", "ADAS11", "ADAS13", "ADASQ4", "MMSE",
	"RAVLT_immediate", "RAVLT_learning", "RAVLT_forgetting", "RAVLT_perc_forgetting",
	"LDELTOTAL", "DIGITSCOR", "TRABSCOR", "FAQ", "MOCA",
	"EcogPtMem", "EcogPtLang", "EcogPtVisspat", "EcogPtPlan", "EcogPtOrgan", "EcogPtDivatt", "EcogPtTotal",
	"EcogSPMem", "EcogSPLang", "EcogSPVisspat", "EcogSPPlan", "EcogSPOrgan", "EcogSPDivatt", "EcogSPTotal",
	"FLDSTRENG", "FSVERSION", "IMAGEUID",
	"Ventricles", "Hippocampus", "WholeBrain", "Entorhinal", "Fusiform", "MidTemp", "ICV",
	"DX",
}

// ADNITailColumn is a baseline column past the cutoff that pruning drops.
const ADNITailColumn = "EXAMDATE_bl"

// ADNIHeader returns the 62-column fixture header: the core columns, one
// tail column, then Month_bl.
func ADNIHeader() []string {
	h := append([]string(nil), ADNICoreColumns...)
	return append(h, ADNITailColumn, "Month_bl")
}

// cycle picks values[r % len(values)].
func cycle(values ...string) func(int) string {
	return func(r int) string { return values[r%len(values)] }
}

var fixtureValues = map[string]func(int) string{
	"RID":       func(r int) string { return strconv.Itoa(r + 2) },
	"COLPROT":   cycle("ADNI1"),
	"ORIGPROT":  cycle("ADNI1"),
	"PTID":      func(r int) string { return "011_S_" + strconv.Itoa(1000+r) },
	"SITE":      cycle("11"),
	"VISCODE":   cycle("m0", "y1", "m24"),
	"EXAMDATE":  cycle("2005-09-08", "2006-09-12", "2007-09-10"),
	"DX_bl":     cycle("CN", "LMCI"),
	"AGE":       cycle("74.3", "81.3"),
	"PTGENDER":  cycle("Male", "Female"),
	"PTEDUCAT":  cycle("16", "18"),
	"PTETHCAT":  cycle("Not Hisp/Latino", "Unknown"),
	"PTRACCAT":  cycle("White", "Black"),
	"PTMARRY":   cycle("Married", "Unknown"),
	"APOE4":     cycle("0", "1", "2"),
	"PIB":       cycle(""),
	"ABETA":     cycle("<80", "245.6", ">1700"),
	"TAU":       cycle("239.7", ">1300", ""),
	"PTAU":      cycle("22.83", "", "<8"),
	"FLDSTRENG": cycle("1.5 Tesla MRI", "3 Tesla MRI"),
	"FSVERSION": cycle("Cross-Sectional FreeSurfer (FreeSurfer Version 4.3)"),
	"IMAGEUID":  cycle("35475", "Unknown"),
	"DX":        cycle("CN", "MCI", "Dementia"),

	ADNITailColumn: cycle("2005-09-08"),
	"Month_bl":     cycle("0", "12.0", "24.0"),
}

// ADNIRecords returns a header row followed by rows of synthetic ADNIMERGE
// data. Row 0 carries a left-censored ABETA ("<80"), row 1 an uncensored
// ABETA ("245.6") and row 2 a right-censored ABETA (">1700"). Visit codes
// use the unnormalized "m0" and "y1" spellings, and some categorical cells
// hold "Unknown".
func ADNIRecords(rows int) [][]string {
	header := ADNIHeader()
	records := [][]string{header}
	for r := 0; r < rows; r++ {
		rec := make([]string, len(header))
		for j, name := range header {
			if f, ok := fixtureValues[name]; ok {
				rec[j] = f(r)
				continue
			}
			rec[j] = strconv.Itoa(r + j)
		}
		records = append(records, rec)
	}
	return records
}

// ADNICSV renders ADNIRecords(rows) as CSV text.
func ADNICSV(rows int) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.WriteAll(ADNIRecords(rows))
	return sb.String()
}

// WriteADNICSV writes the fixture to dir/ADNIMERGE.csv and returns the path.
func WriteADNICSV(t *testing.T, dir string, rows int) string {
	t.Helper()
	path := filepath.Join(dir, "ADNIMERGE.csv")
	if err := os.WriteFile(path, []byte(ADNICSV(rows)), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
