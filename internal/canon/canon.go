// Package canon maps raw species, tool and model codes to presentation labels
// and sorts tool runs into ab initio, evidence-based and GeAnno settings.
package canon

import (
	"strings"

	"github.com/su1ph3r/annobench/pkg/types"
)

// UnknownTrain labels a SNAP run without a training species
const UnknownTrain = "Unknown"

// Canonicalizer resolves labels against a set of reference tables
type Canonicalizer struct {
	species Lookup[string]
	sizes   Lookup[float64]
	tools   Lookup[string]
	models  Lookup[string]
	train   Lookup[string]
}

// New creates a canonicalizer. A nil tables argument selects the defaults.
func New(t *Tables) *Canonicalizer {
	if t == nil {
		t = DefaultTables()
	}
	return &Canonicalizer{
		species: NewLookup(t.SpeciesLabels, TitleCase),
		sizes:   NewLookup[float64](t.GenomeSizeKb, nil),
		tools:   NewLookup(t.ToolLabels, Identity),
		models:  NewLookup(t.ModelLabels, Identity),
		train:   NewLookup[string](t.TrainAliases, nil),
	}
}

// SpeciesLabel returns e.g. "A. thaliana" for arabidopsis_thaliana; unknown
// codes are title-cased with underscores replaced by spaces.
func (c *Canonicalizer) SpeciesLabel(code string) string {
	return c.species.Label(code)
}

// ToolLabel returns the display name of a tool kind
func (c *Canonicalizer) ToolLabel(kind types.ToolKind) string {
	return c.tools.Label(string(kind))
}

// ModelLabel returns the display name of a GeAnno model, or the model name
// itself when it is not in the table.
func (c *Canonicalizer) ModelLabel(model string) string {
	return c.models.Label(model)
}

// GeAnnoLabel names a GeAnno model as a tool, e.g. "GeAnno (M. esculenta, PCA)"
func (c *Canonicalizer) GeAnnoLabel(model string) string {
	name := c.ModelLabel(model)
	base := strings.TrimSuffix(name, " (PCA)")
	pca := base != name
	base = strings.TrimSuffix(base, " model")
	if pca {
		return "GeAnno (" + base + ", PCA)"
	}
	return "GeAnno (" + base + ")"
}

// SnapBucket maps a SNAP training species to one of the canonical training
// buckets. Unmatched values are returned unchanged.
func (c *Canonicalizer) SnapBucket(train string) string {
	k := strings.ToLower(strings.TrimSpace(train))
	if k == "" {
		return UnknownTrain
	}
	if b, ok := c.train.Get(k); ok {
		return b
	}
	return train
}

// GenomeSizeKb returns the reference genome size of a species
func (c *Canonicalizer) GenomeSizeKb(species string) (float64, bool) {
	return c.sizes.Get(species)
}

// PerKb divides v by the species genome size. ok is false for species
// without a size entry; such rows belong in no size-normalized view.
func (c *Canonicalizer) PerKb(v types.Score, species string) (types.Score, bool) {
	size, ok := c.GenomeSizeKb(species)
	if !ok || size <= 0 {
		return types.Null, false
	}
	return types.Ratio(v, types.Some(size)), true
}

// Classify returns the setting and tool label of a run. Evidence-based runs
// whose hint is not genus, order or far come back as SettingNone and take
// no part in evidence aggregates.
func (c *Canonicalizer) Classify(v types.Variant) (types.Setting, string) {
	switch t := v.(type) {
	case types.Augustus:
		if t.Hint == types.HintNone || t.Hint == types.HintAbInitio {
			return types.SettingAbInitio, c.ToolLabel(types.ToolAugustus) + " (ab initio)"
		}
		return c.evidence(t.Hint, c.ToolLabel(types.ToolAugustus)+" (hints)")
	case types.GeneMarkES:
		return types.SettingAbInitio, c.ToolLabel(types.ToolGeneMarkES)
	case types.SNAP:
		return types.SettingAbInitio, c.ToolLabel(types.ToolSNAP) + " (" + c.SnapBucket(t.TrainSpecies) + ")"
	case types.GeneMarkEP:
		return c.evidence(t.Hint, c.ToolLabel(types.ToolGeneMarkEP))
	case types.GeneMarkETP:
		return c.evidence(t.Hint, c.ToolLabel(types.ToolGeneMarkETP))
	case types.GeMoMa:
		return c.evidence(t.Hint, c.ToolLabel(types.ToolGeMoMa))
	case types.GeAnno:
		return types.SettingReference, c.GeAnnoLabel(t.Model)
	}
	return types.SettingNone, ""
}

func (c *Canonicalizer) evidence(h types.Hint, label string) (types.Setting, string) {
	if !types.NormalizeHint(string(h)).IsEvidence() {
		return types.SettingNone, label
	}
	return types.SettingEvidence, label
}

// VariantOf rebuilds the variant of a normalized row
func VariantOf(r types.Row) types.Variant {
	switch r.Kind {
	case types.ToolAugustus:
		return types.Augustus{Hint: r.Hint}
	case types.ToolGeneMarkES:
		return types.GeneMarkES{}
	case types.ToolGeneMarkEP:
		return types.GeneMarkEP{Hint: r.Hint}
	case types.ToolGeneMarkETP:
		return types.GeneMarkETP{Hint: r.Hint}
	case types.ToolGeMoMa:
		return types.GeMoMa{Hint: r.Hint}
	case types.ToolSNAP:
		return types.SNAP{TrainSpecies: r.TrainSpecies}
	case types.ToolGeAnno:
		return types.GeAnno{Model: r.Tool}
	}
	return nil
}

// Annotate returns a copy of rows with species label, tool label and
// setting filled in.
func (c *Canonicalizer) Annotate(rows []types.Row) []types.Row {
	out := make([]types.Row, len(rows))
	for i, r := range rows {
		r.SpeciesLabel = c.SpeciesLabel(r.Species)
		r.Setting, r.ToolLabel = c.Classify(VariantOf(r))
		out[i] = r
	}
	return out
}
