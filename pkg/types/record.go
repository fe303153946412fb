package types

// RunMeta is the experiment metadata encoded in a result filename
type RunMeta struct {
	Variant Variant `json:"variant"`
	Species string  `json:"species"`
	MutRate float64 `json:"mut_rate"`
	TimeSec float64 `json:"time_sec"`
	RAMMB   float64 `json:"ram_mb"`
}

// Tool returns the kind of the metadata's variant
func (m RunMeta) Tool() ToolKind {
	if m.Variant == nil {
		return ""
	}
	return m.Variant.Kind()
}

// Observation holds the raw metric columns of one result row. Which fields
// are meaningful is decided per table by a ColumnSet.
type Observation struct {
	TP          Score `json:"tp"`
	FP          Score `json:"fp"`
	FN          Score `json:"fn"`
	Sensitivity Score `json:"sensitivity"`
	Specificity Score `json:"specificity"`
	Precision   Score `json:"precision"`
	Recall      Score `json:"recall"`
	F1          Score `json:"f1"`
}

// ColumnSet records which metric columns a source table carries
type ColumnSet uint16

const (
	ColTP ColumnSet = 1 << iota
	ColFP
	ColFN
	ColSensitivity
	ColSpecificity
	ColPrecision
	ColRecall
	ColF1
)

// ColCounts is the tp/fp/fn triple
const ColCounts = ColTP | ColFP | ColFN

// Has reports whether every column in c is present
func (s ColumnSet) Has(c ColumnSet) bool {
	return s&c == c
}

// Metrics are the normalized scores, always fractions in [0,1] or null
type Metrics struct {
	Precision Score `json:"precision"`
	Recall    Score `json:"recall"`
	F1        Score `json:"f1"`
}

// OperatingPoint is a GeAnno window/step/threshold configuration
type OperatingPoint struct {
	Window    Score `json:"window"`
	Step      Score `json:"step"`
	Threshold Score `json:"threshold"`
}

// Setting is the semantic category of a tool run
type Setting string

const (
	SettingNone      Setting = ""
	SettingAbInitio  Setting = "Ab initio"
	SettingEvidence  Setting = "Evidence-based"
	SettingReference Setting = "GeAnno"
)

// Row is one normalized benchmark observation
type Row struct {
	Kind         ToolKind       `json:"kind"`
	Tool         string         `json:"tool"`
	Species      string         `json:"species"`
	MutRate      Score          `json:"mut_rate"`
	Hint         Hint           `json:"hint,omitempty"`
	TrainSpecies string         `json:"train_species,omitempty"`
	Point        OperatingPoint `json:"operating_point"`
	TimeSec      Score          `json:"time_sec"`
	RAMMB        Score          `json:"ram_mb"`
	Counts       Observation    `json:"-"`
	Metrics

	SpeciesLabel string  `json:"species_label,omitempty"`
	ToolLabel    string  `json:"tool_label,omitempty"`
	Setting      Setting `json:"setting,omitempty"`

	File string `json:"file,omitempty"`
}

// RowFromMeta copies decoded filename metadata into a row
func RowFromMeta(m RunMeta) Row {
	r := Row{
		Kind:    m.Tool(),
		Tool:    string(m.Tool()),
		Species: m.Species,
		MutRate: Some(m.MutRate),
		TimeSec: Some(m.TimeSec),
		RAMMB:   Some(m.RAMMB),
	}
	if h, ok := HintOf(m.Variant); ok {
		r.Hint = NormalizeHint(string(h))
	}
	if ts, ok := TrainSpeciesOf(m.Variant); ok {
		r.TrainSpecies = ts
	}
	return r
}

// AUCRow is one AUC-ROC / AUC-PRC measurement
type AUCRow struct {
	Kind    ToolKind       `json:"kind"`
	Tool    string         `json:"tool"`
	Species string         `json:"species"`
	MutRate Score          `json:"mut_rate"`
	Point   OperatingPoint `json:"operating_point"`
	AUCROC  Score          `json:"auc_roc"`
	AUCPRC  Score          `json:"auc_prc"`
}
