package schema

// block declares a run of columns sharing one modality and default
// classification. Overrides replace NumCat and/or DataType for named columns.
type block struct {
	mod       Mod
	numCat    NumCat
	dataType  DataType
	names     []string
	overrides map[string]override
}

type override struct {
	numCat   NumCat
	dataType DataType
}

// adniMergeBlocks lists every expected prepared column. Row order of the
// dictionary is the order of this list.
var adniMergeBlocks = []block{
	{mod: ModId, names: []string{"RID"}},
	{mod: ModOther, names: []string{
		"PTID", "VISCODE", "SITE", "COLPROT", "ORIGPROT", "EXAMDATE",
		"DX_bl", "FLDSTRENG", "FSVERSION", "IMAGEUID", "Month_bl",
	}},
	{
		mod: ModDemog, numCat: NumCatCat, dataType: DataTypeNominal,
		names: []string{"AGE", "PTGENDER", "PTEDUCAT", "PTETHCAT", "PTRACCAT", "PTMARRY"},
		overrides: map[string]override{
			"AGE":      {numCat: NumCatNum, dataType: DataTypeContinuous},
			"PTEDUCAT": {dataType: DataTypeOrdinal},
		},
	},
	{mod: ModGene, numCat: NumCatCat, dataType: DataTypeOrdinal, names: []string{"APOE4"}},
	{mod: ModCli, numCat: NumCatCat, dataType: DataTypeOrdinal, names: []string{
		"CDRSB", "FAQ",
		"EcogPtMem", "EcogPtLang", "EcogPtVisspat", "EcogPtPlan", "EcogPtOrgan", "EcogPtDivatt", "EcogPtTotal",
		"EcogSPMem", "EcogSPLang", "EcogSPVisspat", "EcogSPPlan", "EcogSPOrgan", "EcogSPDivatt", "EcogSPTotal",
	}},
	{mod: ModCog, numCat: NumCatCat, dataType: DataTypeOrdinal, names: []string{
		"ADAS11", "ADAS13", "ADASQ4", "MMSE",
		"RAVLT_immediate", "RAVLT_learning", "RAVLT_forgetting", "RAVLT_perc_forgetting",
		"LDELTOTAL", "DIGITSCOR", "TRABSCOR", "MOCA",
	}},
	{mod: ModCsf, numCat: NumCatCsfCat, dataType: DataTypeCsfOrdinal, names: []string{
		"ABETA_LowMidHigh", "TAU_LowMidHigh", "PTAU_LowMidHigh",
	}},
	{mod: ModCsf, numCat: NumCatCsfNum, dataType: DataTypeCsfContinuous, names: []string{"ABETA", "TAU", "PTAU"}},
	{mod: ModPet, numCat: NumCatNum, dataType: DataTypeContinuous, names: []string{"FDG", "PIB", "AV45"}},
	{mod: ModMri, numCat: NumCatNum, dataType: DataTypeDiscrete, names: []string{
		"Ventricles", "Hippocampus", "WholeBrain", "Entorhinal", "Fusiform", "MidTemp", "ICV",
	}},
	{mod: ModDx, numCat: NumCatDxCat, dataType: DataTypeDxOrdinal, names: []string{"DX"}},
}

func (b block) descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(b.names))
	for _, name := range b.names {
		d := Descriptor{Name: name, Mod: b.mod, NumCat: b.numCat, DataType: b.dataType}
		if o, ok := b.overrides[name]; ok {
			if o.numCat != NumCatNone {
				d.NumCat = o.numCat
			}
			if o.dataType != DataTypeNone {
				d.DataType = o.dataType
			}
		}
		out = append(out, d)
	}
	return out
}

func buildRegistry(blocks []block) *Dictionary {
	var descs []Descriptor
	for _, b := range blocks {
		descs = append(descs, b.descriptors()...)
	}
	d, err := NewDictionary(descs)
	if err != nil {
		panic("schema: invalid ADNIMERGE registry: " + err.Error())
	}
	return d
}

var adniMerge = buildRegistry(adniMergeBlocks)

// ADNIMerge returns the column dictionary for the prepared ADNIMERGE table.
// The registry is built once; Dictionary values are immutable, so the same
// instance is shared by every caller.
func ADNIMerge() *Dictionary {
	return adniMerge
}
