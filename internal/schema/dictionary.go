package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrDuplicateName is returned when a dictionary would list a column twice.
var ErrDuplicateName = errors.New("duplicate column name")

// Dictionary is an ordered, immutable list of column descriptors with
// unique names.
type Dictionary struct {
	descs []Descriptor
	index map[string]int
}

// NewDictionary builds a dictionary from descriptors in the given order.
func NewDictionary(descs []Descriptor) (*Dictionary, error) {
	owned := make([]Descriptor, len(descs))
	copy(owned, descs)
	index := make(map[string]int, len(owned))
	for i, d := range owned {
		if _, dup := index[d.Name]; dup {
			return nil, fmt.Errorf("%s: %w", d.Name, ErrDuplicateName)
		}
		index[d.Name] = i
	}
	return &Dictionary{descs: owned, index: index}, nil
}

// Len returns the number of descriptors.
func (d *Dictionary) Len() int { return len(d.descs) }

// Descriptors returns a copy of the descriptors in declaration order.
func (d *Dictionary) Descriptors() []Descriptor {
	out := make([]Descriptor, len(d.descs))
	copy(out, d.descs)
	return out
}

// Names returns the column names in declaration order.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.descs))
	for i, desc := range d.descs {
		out[i] = desc.Name
	}
	return out
}

// Lookup returns the descriptor for a column name.
func (d *Dictionary) Lookup(name string) (Descriptor, bool) {
	i, ok := d.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return d.descs[i], true
}

// Select returns, in declaration order, the names of every descriptor whose
// field equals value.
func (d *Dictionary) Select(field, value string) ([]string, error) {
	var names []string
	for _, desc := range d.descs {
		got, err := desc.Field(field)
		if err != nil {
			return nil, err
		}
		if got == value {
			names = append(names, desc.Name)
		}
	}
	return names, nil
}

// WithDtypes returns a copy of the dictionary with Dtype set for each name in
// dtypes. Names without a descriptor are ignored and reported back.
func (d *Dictionary) WithDtypes(dtypes map[string]string) (*Dictionary, []string) {
	descs := d.Descriptors()
	var unknown []string
	for name, dtype := range dtypes {
		i, ok := d.index[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		descs[i].Dtype = dtype
	}
	return &Dictionary{descs: descs, index: d.index}, unknown
}

var csvHeader = []string{"Name", "Mod", "NumCat", "DataType", "Dtype"}

// WriteCSV writes the dictionary with a Name,Mod,NumCat,DataType,Dtype
// header. Empty attributes are written as empty fields.
func (d *Dictionary) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write dictionary header: %w", err)
	}
	for _, desc := range d.descs {
		rec := []string{desc.Name, string(desc.Mod), string(desc.NumCat), string(desc.DataType), desc.Dtype}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write descriptor %s: %w", desc.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a dictionary written by WriteCSV.
func ReadCSV(r io.Reader) (*Dictionary, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dictionary CSV is empty")
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		return nil, fmt.Errorf("invalid dictionary header, expected: %s", strings.Join(csvHeader, ","))
	}

	descs := make([]Descriptor, 0, len(records)-1)
	for _, rec := range records[1:] {
		descs = append(descs, Descriptor{
			Name:     rec[0],
			Mod:      Mod(rec[1]),
			NumCat:   NumCat(rec[2]),
			DataType: DataType(rec[3]),
			Dtype:    rec[4],
		})
	}
	return NewDictionary(descs)
}
