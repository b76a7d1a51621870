// Package schema holds the column dictionary for the prepared ADNIMERGE
// table: the modality, coarse numeric/categorical class, and semantic data
// type of every expected output column.
package schema

import (
	"fmt"
)

// Mod is the modality a column belongs to.
type Mod string

const (
	ModId    Mod = "Id"
	ModOther Mod = "Other"
	ModDemog Mod = "Demog"
	ModGene  Mod = "Gene"
	ModCsf   Mod = "Csf"
	ModPet   Mod = "Pet"
	ModCli   Mod = "Cli"
	ModCog   Mod = "Cog"
	ModMri   Mod = "Mri"
	ModDx    Mod = "Dx"
)

// NumCat is the coarse numeric or categorical class of a column. The empty
// value means none.
type NumCat string

const (
	NumCatNone   NumCat = ""
	NumCatNum    NumCat = "Num"
	NumCatCat    NumCat = "Cat"
	NumCatCsfNum NumCat = "CsfNum"
	NumCatCsfCat NumCat = "CsfCat"
	NumCatDxCat  NumCat = "DxCat"
)

// DataType is the semantic type of a column. The empty value means none.
type DataType string

const (
	DataTypeNone          DataType = ""
	DataTypeContinuous    DataType = "Continuous"
	DataTypeDiscrete      DataType = "Discrete"
	DataTypeNominal       DataType = "Nominal"
	DataTypeOrdinal       DataType = "Ordinal"
	DataTypeCsfContinuous DataType = "CsfContinuous"
	DataTypeCsfOrdinal    DataType = "CsfOrdinal"
	DataTypeDxOrdinal     DataType = "DxOrdinal"
)

// Descriptor describes one column of the prepared table. Dtype is empty
// until the storage type of the prepared column is known.
type Descriptor struct {
	Name     string
	Mod      Mod
	NumCat   NumCat
	DataType DataType
	Dtype    string
}

// Administrative reports whether the column is an identifier or bookkeeping
// column rather than a measurement.
func (d Descriptor) Administrative() bool {
	return d.Mod == ModId || d.Mod == ModOther
}

// Field names accepted by Dictionary.Select.
const (
	FieldMod      = "Mod"
	FieldNumCat   = "NumCat"
	FieldDataType = "DataType"
	FieldDtype    = "Dtype"
)

// Field returns the named attribute of the descriptor.
func (d Descriptor) Field(field string) (string, error) {
	switch field {
	case FieldMod:
		return string(d.Mod), nil
	case FieldNumCat:
		return string(d.NumCat), nil
	case FieldDataType:
		return string(d.DataType), nil
	case FieldDtype:
		return d.Dtype, nil
	case "Name":
		return d.Name, nil
	}
	return "", fmt.Errorf("unknown descriptor field %q", field)
}
