// Package prep cleans the ADNIMERGE export into a prepared table and its
// column dictionary.
//
// A Preparer owns one raw table, one working table and one dictionary. Each
// step replaces the working table with a new value derived from the previous
// one; the raw table is never modified after Read. Run executes the steps in
// their fixed order.
package prep

import (
	"context"
	"fmt"

	"github.com/banshee-data/adniprep/internal/config"
	"github.com/banshee-data/adniprep/internal/fsutil"
	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/schema"
	"github.com/banshee-data/adniprep/internal/table"
)

// DtypeRule coerces every dictionary column whose Field equals Value to
// Dtype.
type DtypeRule struct {
	Field string
	Value string
	Dtype table.Dtype
}

// DtypeRules is the fixed coercion sequence applied by Run.
var DtypeRules = []DtypeRule{
	{Field: schema.FieldDataType, Value: string(schema.DataTypeNominal), Dtype: table.String},
	{Field: schema.FieldDataType, Value: string(schema.DataTypeOrdinal), Dtype: table.Float64},
	{Field: schema.FieldNumCat, Value: string(schema.NumCatNum), Dtype: table.Float64},
	{Field: schema.FieldNumCat, Value: string(schema.NumCatCsfCat), Dtype: table.String},
	{Field: schema.FieldNumCat, Value: string(schema.NumCatCsfNum), Dtype: table.Float64},
	{Field: schema.FieldNumCat, Value: string(schema.NumCatDxCat), Dtype: table.String},
}

// Preparer runs the preparation pass for one source file.
type Preparer struct {
	source string
	dest   string
	cfg    *config.PrepConfig
	fs     fsutil.FileSystem

	missing map[string]bool

	raw        *table.Table
	df         *table.Table
	cols       *schema.Dictionary
	censoring  []CensoringSummary
	undeclared []string
}

// Option customises a Preparer.
type Option func(*Preparer)

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.PrepConfig) Option {
	return func(p *Preparer) {
		if cfg != nil {
			p.cfg = cfg
		}
	}
}

// WithFileSystem replaces the OS filesystem used by Read and Write.
func WithFileSystem(fsys fsutil.FileSystem) Option {
	return func(p *Preparer) {
		if fsys != nil {
			p.fs = fsys
		}
	}
}

// New returns a Preparer reading source and writing into the directory dest.
func New(source, dest string, opts ...Option) *Preparer {
	p := &Preparer{
		source: source,
		dest:   dest,
		cfg:    config.DefaultPrepConfig(),
		fs:     fsutil.OSFileSystem{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.missing = make(map[string]bool)
	for _, m := range p.cfg.GetMissingMarkers() {
		p.missing[m] = true
	}
	return p
}

// Raw returns the table as read, or nil before Read.
func (p *Preparer) Raw() *table.Table { return p.raw }

// Prepared returns the current working table, or nil before Initialize.
func (p *Preparer) Prepared() *table.Table { return p.df }

// Dictionary returns the current column dictionary, or nil before
// BuildColumnDictionary.
func (p *Preparer) Dictionary() *schema.Dictionary { return p.cols }

// Censoring returns per-biomarker censoring counts recorded by
// ConvertCSFToLowMidHigh.
func (p *Preparer) Censoring() []CensoringSummary {
	return append([]CensoringSummary(nil), p.censoring...)
}

// Undeclared returns the prepared columns that have no dictionary entry,
// as found by AddDtypeToColumnDictionary.
func (p *Preparer) Undeclared() []string {
	return append([]string(nil), p.undeclared...)
}

type step struct {
	name string
	fn   func() error
}

func (p *Preparer) steps() []step {
	steps := []step{
		{"read", p.Read},
		{"initialize", p.Initialize},
		{"remove unwanted baseline columns", p.RemoveUnwantedBaselineColumns},
		{"fix terminology", p.FixTerminology},
		{"convert csf to low/mid/high", p.ConvertCSFToLowMidHigh},
		{"build column dictionary", p.BuildColumnDictionary},
	}
	for _, rule := range DtypeRules {
		rule := rule
		steps = append(steps, step{
			name: fmt.Sprintf("enforce dtype %s=%s as %s", rule.Field, rule.Value, rule.Dtype),
			fn:   func() error { return p.EnforceDtype(rule.Field, rule.Value, rule.Dtype) },
		})
	}
	return append(steps,
		step{"add dtype to column dictionary", p.AddDtypeToColumnDictionary},
		step{"enforce missing", p.EnforceMissing},
		step{"write", p.Write},
	)
}

// Run executes every step in order and stops at the first error. The
// context is checked before each step.
func (p *Preparer) Run(ctx context.Context) error {
	for _, s := range p.steps() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		if p.df != nil {
			monitoring.Logf("[prep] %s: %d rows x %d columns", s.name, p.df.NumRows(), p.df.NumColumns())
		} else {
			monitoring.Logf("[prep] %s", s.name)
		}
	}
	return nil
}
