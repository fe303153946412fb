// Package analysis builds the tidy tables of a benchmark report from loaded
// rows. Each analysis is a pure function of its inputs; an analysis whose
// selection is empty is skipped with a diagnostic instead of producing a
// table of nulls.
package analysis

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/canon"
	"github.com/su1ph3r/annobench/pkg/types"
)

// Inputs are the loaded datasets an analysis may draw on
type Inputs struct {
	Bench     []types.Row
	GeAnno    []types.Row
	GeAnnoAUC []types.AUCRow
	BenchAUC  []types.AUCRow
}

// Analysis is one named reporting call
type Analysis struct {
	Name string
	Run  func(Inputs) ([]*types.Table, error)
}

// Analyzer holds the reference tables and the GeAnno selection shared by
// all analyses
type Analyzer struct {
	canon    *canon.Canonicalizer
	point    types.GeAnnoSettings
	decimals int
}

// New creates an analyzer. decimals applies to rounded outputs such as the
// percentage tables.
func New(c *canon.Canonicalizer, point types.GeAnnoSettings, decimals int) *Analyzer {
	if c == nil {
		c = canon.New(nil)
	}
	return &Analyzer{canon: c, point: point, decimals: decimals}
}

// Analyses lists every analysis in report order
func (a *Analyzer) Analyses() []Analysis {
	return []Analysis{
		{"evidence_by_hints", one(a.EvidenceByHints)},
		{"mutation_curves", one(a.MutationCurves)},
		{"mutation_curves_by_species", one(a.MutationCurvesBySpecies)},
		{"mutation_drop", one(a.MutationDrop)},
		{"hint_effect", one(a.HintEffect)},
		{"tool_overview", one(a.ToolOverview)},
		{"all_tools_table", one(a.AllToolsTable)},
		{"geanno_models_table", oneGeAnno(a.GeAnnoModelsTable)},
		{"geanno_fixed_point", func(in Inputs) ([]*types.Table, error) { return a.GeAnnoFixedPoint(in.GeAnno) }},
		{"geanno_thresholds", oneGeAnno(a.ThresholdCurves)},
		{"geanno_window_step", oneGeAnno(a.WindowStepBySpecies)},
		{"resources", a.Resources},
		{"abinitio_vs_geanno_thaliana", one(func(in Inputs) (*types.Table, error) { return a.AbInitioVsGeAnno(in, BucketThaliana) })},
		{"abinitio_vs_geanno_sativa", one(func(in Inputs) (*types.Table, error) { return a.AbInitioVsGeAnno(in, BucketSativa) })},
		{"geanno_vs_genemark", one(a.GeAnnoVsGeneMark)},
		{"auc_summary", one(a.AUCSummary)},
	}
}

func one(fn func(Inputs) (*types.Table, error)) func(Inputs) ([]*types.Table, error) {
	return func(in Inputs) ([]*types.Table, error) {
		t, err := fn(in)
		if err != nil {
			return nil, err
		}
		return []*types.Table{t}, nil
	}
}

func oneGeAnno(fn func([]types.Row) (*types.Table, error)) func(Inputs) ([]*types.Table, error) {
	return one(func(in Inputs) (*types.Table, error) { return fn(in.GeAnno) })
}

// Build runs the named analyses (all when names is empty) and adds their
// tables to report. Empty selections become diagnostics; any other error
// aborts.
func (a *Analyzer) Build(in Inputs, report *types.Report, names ...string) error {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	for _, an := range a.Analyses() {
		if len(want) > 0 && !want[an.Name] {
			continue
		}

		tables, err := an.Run(in)
		if errors.Is(err, types.ErrEmptyResult) {
			log.Warn().Str("analysis", an.Name).Err(err).Msg("skipping output")
			report.Warn(types.DiagEmptyResult, an.Name, err.Error())
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", an.Name, err)
		}

		for _, t := range tables {
			if t.Empty() {
				report.Warn(types.DiagEmptyResult, t.Name, "no rows")
				continue
			}
			report.AddTable(t)
		}
		log.Debug().Str("analysis", an.Name).Int("tables", len(tables)).Msg("analysis complete")
	}
	return nil
}
