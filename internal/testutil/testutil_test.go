package testutil

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertError(t, errors.New("test error"))
}

func TestADNIHeader(t *testing.T) {
	t.Parallel()

	if len(ADNICoreColumns) != 60 {
		t.Fatalf("len(ADNICoreColumns) = %d, want 60", len(ADNICoreColumns))
	}
	h := ADNIHeader()
	if len(h) != 62 {
		t.Fatalf("len(ADNIHeader()) = %d, want 62", len(h))
	}
	if h[60] != ADNITailColumn || h[61] != "Month_bl" {
		t.Errorf("tail of header = %v", h[60:])
	}

	seen := map[string]bool{}
	for _, name := range h {
		if seen[name] {
			t.Errorf("duplicate fixture column %s", name)
		}
		seen[name] = true
	}
}

func TestADNICSV_Parses(t *testing.T) {
	t.Parallel()

	records, err := csv.NewReader(strings.NewReader(ADNICSV(3))).ReadAll()
	if err != nil {
		t.Fatalf("fixture CSV does not parse: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	abeta := -1
	for j, name := range records[0] {
		if name == "ABETA" {
			abeta = j
		}
	}
	got := []string{records[1][abeta], records[2][abeta], records[3][abeta]}
	want := []string{"<80", "245.6", ">1700"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ABETA row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteADNICSV(t *testing.T) {
	t.Parallel()

	path := WriteADNICSV(t, t.TempDir(), 2)
	data, err := os.ReadFile(path)
	AssertNoError(t, err)
	if !strings.HasPrefix(string(data), "RID,COLPROT,") {
		t.Errorf("unexpected fixture prefix: %.20s", data)
	}
}
