package analysis

import (
	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

// EvidenceByHints averages evidence-based runs per species, tool and hint
// and adds the GeAnno reference per species.
func (a *Analyzer) EvidenceByHints(in Inputs) (*types.Table, error) {
	ev := evidence(in.Bench)
	if err := aggregate.Require(ev, "evidence-based runs with genus, order or far hints"); err != nil {
		return nil, err
	}

	by := []aggregate.Dim{aggregate.Species, aggregate.SpeciesLabel, aggregate.Tool, aggregate.Hint, aggregate.Setting}
	ref := a.reference(in.GeAnno)
	if len(ref) == 0 {
		log.Warn().Str("model", a.point.Model).Msg("no GeAnno reference rows for evidence comparison")
	}

	groups := concat(
		meanOrNone(ev, by, aggregate.Metrics),
		meanOrNone(ref, by, aggregate.Metrics),
	)
	return aggregate.ToTable("evidence_species_by_hints_plus_geanno",
		"Evidence-based tools by hint, plus GeAnno", by, aggregate.Metrics, groups, false), nil
}

// MutationCurves gives mean metrics per tool and mutation rate across all
// species. Evidence-based tools are macro-averaged over hints.
func (a *Analyzer) MutationCurves(in Inputs) (*types.Table, error) {
	by := []aggregate.Dim{aggregate.Setting, aggregate.Tool, aggregate.MutRate}
	groups := a.mutationGroups(in, by)
	if len(groups) == 0 {
		return nil, types.NewEmptyResult("mutation curves")
	}
	return aggregate.ToTable("mutation_curves_ab_vs_evidence_plus_geanno",
		"Metrics by mutation rate", by, aggregate.Metrics, groups, false), nil
}

// MutationCurvesBySpecies is MutationCurves broken out by species
func (a *Analyzer) MutationCurvesBySpecies(in Inputs) (*types.Table, error) {
	by := []aggregate.Dim{aggregate.Species, aggregate.SpeciesLabel, aggregate.Setting, aggregate.Tool, aggregate.MutRate}
	groups := a.mutationGroups(in, by)
	if len(groups) == 0 {
		return nil, types.NewEmptyResult("mutation curves by species")
	}
	return aggregate.ToTable("mutation_curves_by_species",
		"Metrics by mutation rate per species", by, aggregate.Metrics, groups, false), nil
}

func (a *Analyzer) mutationGroups(in Inputs, by []aggregate.Dim) []aggregate.Group {
	return concat(
		meanOrNone(abInitio(in.Bench), by, aggregate.Metrics),
		macroOrNone(evidence(in.Bench), by, []aggregate.Dim{aggregate.Hint}, aggregate.Metrics),
		meanOrNone(a.reference(in.GeAnno), by, aggregate.Metrics),
	)
}

// Drop reference and target mutation rates
const (
	DropReference = 0.0
	DropTarget    = 0.07
	DropFallback  = 0.04
)

// MutationDrop reports, per tool, how many percentage points each metric
// loses between the unmutated baseline and 7% mutation (4% when 7% was not
// run). Evidence-based tools are averaged over hints, then species.
func (a *Analyzer) MutationDrop(in Inputs) (*types.Table, error) {
	by := []aggregate.Dim{aggregate.Setting, aggregate.Tool, aggregate.MutRate}
	groups := concat(
		meanOrNone(abInitio(in.Bench), by, aggregate.Metrics),
		macroOrNone(evidence(in.Bench), by, []aggregate.Dim{aggregate.Species, aggregate.Hint}, aggregate.Metrics),
		meanOrNone(a.reference(in.GeAnno), by, aggregate.Metrics),
	)

	type toolKey struct{ setting, tool string }
	var order []toolKey
	byTool := make(map[toolKey]map[float64][]types.Score)
	for _, g := range groups {
		if !g.Keys[2].Num.Valid {
			continue
		}
		k := toolKey{g.Keys[0].Text, g.Keys[1].Text}
		if _, ok := byTool[k]; !ok {
			byTool[k] = make(map[float64][]types.Score)
			order = append(order, k)
		}
		byTool[k][g.Keys[2].Num.Value] = g.Values
	}

	t := types.NewTable("tool_mutation_drop_0_vs_7pct_fallback4pct", "Metric drop under mutation",
		"setting", "tool_label", "mut_rate_ref", "mut_rate_target", "precision_diff", "recall_diff", "f1_diff")
	for _, k := range order {
		rates := byTool[k]
		target, ok := pickRate(rates, DropTarget, DropFallback)
		if !ok {
			continue
		}
		ref := lookupRate(rates, DropReference)
		cells := []types.Cell{
			types.TextCell(k.setting),
			types.TextCell(k.tool),
			types.FloatCell(DropReference),
			types.FloatCell(target),
		}
		tv := lookupRate(rates, target)
		for j := range aggregate.Metrics {
			diff := types.Null
			if ref != nil {
				diff = ref[j].Sub(tv[j]).Scale(100)
			}
			cells = append(cells, types.NumCell(round(diff, a.decimals)))
		}
		t.Append(cells...)
	}

	if t.Empty() {
		return nil, types.NewEmptyResult("tools with runs at mutation rate %g or %g", DropTarget, DropFallback)
	}
	return t, nil
}

func pickRate(rates map[float64][]types.Score, candidates ...float64) (float64, bool) {
	for _, c := range candidates {
		if lookupRate(rates, c) != nil {
			return c, true
		}
	}
	return 0, false
}

func lookupRate(rates map[float64][]types.Score, x float64) []types.Score {
	for r, v := range rates {
		if near(types.Some(r), x) {
			return v
		}
	}
	return nil
}

// HintEffect averages evidence-based runs per tool, hint and mutation rate
// over all species.
func (a *Analyzer) HintEffect(in Inputs) (*types.Table, error) {
	by := []aggregate.Dim{aggregate.Tool, aggregate.Hint, aggregate.MutRate}
	groups, err := aggregate.Mean(evidence(in.Bench), by, aggregate.Metrics)
	if err != nil {
		return nil, err
	}
	return aggregate.ToTable("hint_effect_by_tool_mutrate", "Hint effect per tool", by, aggregate.Metrics, groups, false), nil
}

// ToolOverview averages every benchmark run per tool and mutation rate,
// regardless of setting.
func (a *Analyzer) ToolOverview(in Inputs) (*types.Table, error) {
	if err := aggregate.Require(in.Bench, "benchmark runs"); err != nil {
		return nil, err
	}
	rows := relabel(in.Bench, func(r types.Row) string { return a.canon.ToolLabel(r.Kind) })

	by := []aggregate.Dim{aggregate.Tool, aggregate.MutRate}
	measures := append(append([]aggregate.Measure{}, aggregate.Metrics...), aggregate.Time, aggregate.RAM)
	groups, err := aggregate.Mean(rows, by, measures)
	if err != nil {
		return nil, err
	}
	return aggregate.ToTable("tool_overview_by_mutrate", "Tool overview", by, measures, groups, false), nil
}
