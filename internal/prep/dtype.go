package prep

import (
	"fmt"
	"strings"

	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/schema"
	"github.com/banshee-data/adniprep/internal/table"
)

// BuildColumnDictionary loads the static ADNIMERGE column dictionary.
func (p *Preparer) BuildColumnDictionary() error {
	p.cols = schema.ADNIMerge()
	return nil
}

// EnforceDtype coerces every dictionary column whose field equals value to
// dtype d. Either every selected column is converted or the working table is
// left unchanged.
func (p *Preparer) EnforceDtype(field, value string, d table.Dtype) error {
	if p.df == nil {
		return ErrNotInitialized
	}
	if p.cols == nil {
		return ErrNoDictionary
	}

	names, err := p.cols.Select(field, value)
	if err != nil {
		return &SchemaMismatchError{Column: field, Reason: "unknown dictionary field", Err: err}
	}

	df := p.df
	for _, name := range names {
		df, err = df.Coerce(name, d)
		if err != nil {
			return tableError(name, err)
		}
	}
	p.df = df
	return nil
}

// AddDtypeToColumnDictionary records the storage type of each non
// administrative prepared column in the dictionary. Prepared columns without
// a descriptor are reported through Undeclared and are fatal under a strict
// schema.
func (p *Preparer) AddDtypeToColumnDictionary() error {
	if p.df == nil {
		return ErrNotInitialized
	}
	if p.cols == nil {
		return ErrNoDictionary
	}

	dtypes := make(map[string]string)
	var undeclared []string
	for _, name := range p.df.Columns() {
		desc, ok := p.cols.Lookup(name)
		if !ok {
			undeclared = append(undeclared, name)
			continue
		}
		if desc.Administrative() {
			continue
		}
		d, err := p.df.Dtype(name)
		if err != nil {
			return tableError(name, err)
		}
		dtypes[name] = d.String()
	}

	p.cols, _ = p.cols.WithDtypes(dtypes)
	p.undeclared = undeclared
	if len(undeclared) == 0 {
		return nil
	}

	monitoring.Warnf("%d prepared columns have no dictionary entry: %s", len(undeclared), strings.Join(undeclared, ", "))
	if p.cfg.GetStrictSchema() {
		return &SchemaMismatchError{
			Column: undeclared[0],
			Reason: fmt.Sprintf("no dictionary entry (%d undeclared columns)", len(undeclared)),
		}
	}
	return nil
}

// EnforceMissing collapses every remaining form of missing value (empty
// text and configured missing markers) to a missing cell.
func (p *Preparer) EnforceMissing() error {
	if p.df == nil {
		return ErrNotInitialized
	}
	p.df = p.df.MapCells(func(c table.Cell) table.Cell {
		if s, ok := c.Text(); ok && p.isMissingMarker(s) {
			return table.Missing()
		}
		return c
	})
	return nil
}
