package types

import "strings"

// ToolKind identifies a gene annotation tool
type ToolKind string

const (
	ToolAugustus    ToolKind = "augustus"
	ToolSNAP        ToolKind = "snap"
	ToolGeneMarkES  ToolKind = "genemarkes"
	ToolGeneMarkEP  ToolKind = "genemarkep"
	ToolGeneMarkETP ToolKind = "genemarketp"
	ToolGeMoMa      ToolKind = "gemoma"
	ToolGeAnno      ToolKind = "geanno"
)

// BenchmarkTools lists the tools whose results are identified by filename
var BenchmarkTools = []ToolKind{
	ToolAugustus,
	ToolSNAP,
	ToolGeneMarkES,
	ToolGeneMarkEP,
	ToolGeneMarkETP,
	ToolGeMoMa,
}

// ParseToolKind matches s exactly against the benchmark tools
func ParseToolKind(s string) (ToolKind, bool) {
	for _, k := range BenchmarkTools {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Hint is the evidence setting a hinted tool was run with
type Hint string

const (
	HintNone     Hint = ""
	HintGenus    Hint = "genus"
	HintOrder    Hint = "order"
	HintFar      Hint = "far"
	HintAbInitio Hint = "abinitio"
)

// EvidenceHints are the hints that take part in evidence-based aggregates,
// in presentation order
var EvidenceHints = []Hint{HintGenus, HintOrder, HintFar}

// NormalizeHint lower-cases and trims a raw hint value
func NormalizeHint(s string) Hint {
	return Hint(strings.ToLower(strings.TrimSpace(s)))
}

// IsEvidence reports whether h is one of genus, order or far
func (h Hint) IsEvidence() bool {
	switch h {
	case HintGenus, HintOrder, HintFar:
		return true
	}
	return false
}

// Variant carries the tool-specific part of a run's metadata. The set of
// implementations is closed: one struct per tool.
type Variant interface {
	Kind() ToolKind
	variant()
}

// Augustus runs are ab initio when Hint is empty
type Augustus struct {
	Hint Hint `json:"hint,omitempty"`
}

// GeneMarkES is always ab initio
type GeneMarkES struct{}

// GeneMarkEP runs with protein hints
type GeneMarkEP struct {
	Hint Hint `json:"hint"`
}

// GeneMarkETP runs with transcript and protein hints
type GeneMarkETP struct {
	Hint Hint `json:"hint"`
}

// GeMoMa runs with homology hints
type GeMoMa struct {
	Hint Hint `json:"hint"`
}

// SNAP runs are labelled by the species the HMM was trained on
type SNAP struct {
	TrainSpecies string `json:"train_species"`
}

// GeAnno rows come from the in-house tool's exports; Model is the raw model
// name (e.g. m_esculenta_model_PCA)
type GeAnno struct {
	Model string `json:"model"`
}

func (Augustus) Kind() ToolKind    { return ToolAugustus }
func (GeneMarkES) Kind() ToolKind  { return ToolGeneMarkES }
func (GeneMarkEP) Kind() ToolKind  { return ToolGeneMarkEP }
func (GeneMarkETP) Kind() ToolKind { return ToolGeneMarkETP }
func (GeMoMa) Kind() ToolKind      { return ToolGeMoMa }
func (SNAP) Kind() ToolKind        { return ToolSNAP }
func (GeAnno) Kind() ToolKind      { return ToolGeAnno }

func (Augustus) variant()    {}
func (GeneMarkES) variant()  {}
func (GeneMarkEP) variant()  {}
func (GeneMarkETP) variant() {}
func (GeMoMa) variant()      {}
func (SNAP) variant()        {}
func (GeAnno) variant()      {}

// HintOf returns the hint carried by v, if the variant has one set
func HintOf(v Variant) (Hint, bool) {
	switch t := v.(type) {
	case Augustus:
		return t.Hint, t.Hint != HintNone
	case GeneMarkEP:
		return t.Hint, true
	case GeneMarkETP:
		return t.Hint, true
	case GeMoMa:
		return t.Hint, true
	}
	return HintNone, false
}

// TrainSpeciesOf returns the SNAP training species
func TrainSpeciesOf(v Variant) (string, bool) {
	if s, ok := v.(SNAP); ok {
		return s.TrainSpecies, true
	}
	return "", false
}
