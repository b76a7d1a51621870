package prep

import (
	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/schema"
	"github.com/banshee-data/adniprep/internal/table"
)

// Read loads the source CSV into the raw table. Fields equal to a
// configured missing marker are read as missing.
func (p *Preparer) Read() error {
	f, err := p.fs.Open(p.source)
	if err != nil {
		return &SourceReadError{Path: p.source, Err: err}
	}
	defer f.Close()

	raw, err := table.ReadCSV(f, p.isMissingMarker)
	if err != nil {
		return &SourceReadError{Path: p.source, Err: err}
	}
	p.raw = raw
	return nil
}

func (p *Preparer) isMissingMarker(s string) bool {
	return s == "" || p.missing[s]
}

// Initialize sets the working table to a deep copy of the raw table.
func (p *Preparer) Initialize() error {
	if p.raw == nil {
		return ErrNotRead
	}
	p.df = p.raw.Clone()
	return nil
}

// RemoveUnwantedBaselineColumns drops every column at or past the core
// column cutoff, counted in the raw table's column order, except the
// retained columns.
func (p *Preparer) RemoveUnwantedBaselineColumns() error {
	if p.raw == nil {
		return ErrNotRead
	}
	if p.df == nil {
		return ErrNotInitialized
	}

	cutoff := p.cfg.GetCoreColumnCount()
	keep := make(map[string]bool)
	for _, name := range p.cfg.GetRetainedColumns() {
		keep[name] = true
		if !p.raw.Has(name) {
			monitoring.Warnf("retained column %s is not in the source table", name)
		}
	}

	declared := schema.ADNIMerge()
	var unwanted []string
	for i, name := range p.raw.Columns() {
		if i < cutoff || keep[name] || !p.df.Has(name) {
			continue
		}
		if _, ok := declared.Lookup(name); ok {
			// The positional cutoff no longer matches the export layout.
			monitoring.Warnf("dropping dictionary column %s at position %d (cutoff %d)", name, i, cutoff)
		}
		unwanted = append(unwanted, name)
	}

	df, err := p.df.Drop(unwanted...)
	if err != nil {
		return tableError("", err)
	}
	p.df = df
	return nil
}
