package analysis

import (
	"strings"

	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

// GeAnno model table columns
var modelColumns = []string{
	"A. thaliana model (Non-PCA)", "A. thaliana model (PCA)",
	"O. sativa model (Non-PCA)", "O. sativa model (PCA)",
	"GeneMark model (Non-PCA)", "GeneMark model (PCA)",
	"M. esculenta model (PCA)",
}

var modelBases = map[string]bool{
	"A. thaliana model":  true,
	"O. sativa model":    true,
	"GeneMark model":     true,
	"M. esculenta model": true,
}

// modelColumn maps a GeAnno model label to its column in the models table
func modelColumn(label string) (string, bool) {
	base := strings.TrimSpace(strings.ReplaceAll(label, " (PCA)", ""))
	if !modelBases[base] {
		return "", false
	}
	if base == "M. esculenta model" {
		return "M. esculenta model (PCA)", true
	}
	if strings.Contains(label, "(PCA)") {
		return base + " (PCA)", true
	}
	return base + " (Non-PCA)", true
}

// modelLabelled returns GeAnno rows labelled by their model
func (a *Analyzer) modelLabelled(rows []types.Row) []types.Row {
	return relabel(rows, func(r types.Row) string { return a.canon.ModelLabel(r.Tool) })
}

// GeAnnoModelsTable compares the GeAnno models at the operating point on
// unmutated genomes, in percent.
func (a *Analyzer) GeAnnoModelsTable(rows []types.Row) (*types.Table, error) {
	sel := aggregate.Filter(a.atFixedPoint(rows), atMutRate(0))
	if err := aggregate.Require(sel, "GeAnno rows at the operating point"); err != nil {
		return nil, err
	}

	var cols []types.Row
	for _, r := range a.modelLabelled(sel) {
		if c, ok := modelColumn(r.ToolLabel); ok {
			r.ToolLabel = c
			cols = append(cols, r)
		}
	}
	if err := aggregate.Require(cols, "GeAnno rows of known models"); err != nil {
		return nil, err
	}

	groups, err := aggregate.Mean(cols, []aggregate.Dim{aggregate.SpeciesLabel, aggregate.Tool}, aggregate.Metrics)
	if err != nil {
		return nil, err
	}
	return a.percentTable("geanno_models_table", "GeAnno models", groups, modelColumns), nil
}

// GeAnnoFixedPoint gives per (species, model) means on unmutated genomes
// and per (model, mutation rate) means, both at the operating point and
// from rows that carry counts.
func (a *Analyzer) GeAnnoFixedPoint(rows []types.Row) ([]*types.Table, error) {
	sel := a.modelLabelled(withCounts(a.atFixedPoint(rows)))
	if err := aggregate.Require(sel, "GeAnno count rows at the operating point"); err != nil {
		return nil, err
	}

	var tables []*types.Table

	bySpecies := []aggregate.Dim{aggregate.Species, aggregate.SpeciesLabel, aggregate.Tool}
	if mut0 := aggregate.Filter(sel, atMutRate(0)); len(mut0) > 0 {
		groups, _ := aggregate.Mean(mut0, bySpecies, aggregate.Metrics)
		tables = append(tables, aggregate.ToTable("geanno_metrics_by_species_model",
			"GeAnno per species and model", bySpecies, aggregate.Metrics, roundGroups(groups, 4), false))
	}

	byMut := []aggregate.Dim{aggregate.Tool, aggregate.MutRate}
	mutated := aggregate.Filter(sel, func(r types.Row) bool { return r.MutRate.Valid })
	if len(mutated) > 0 {
		groups, _ := aggregate.Mean(mutated, byMut, aggregate.Metrics)
		tables = append(tables, aggregate.ToTable("geanno_metrics_by_tool_mutrate",
			"GeAnno per model and mutation rate", byMut, aggregate.Metrics, roundGroups(groups, 4), false))
	}

	if len(tables) == 0 {
		return nil, types.NewEmptyResult("GeAnno count rows with a mutation rate")
	}
	return tables, nil
}

// ThresholdCurves averages GeAnno runs per model and threshold at the
// configured window and step on unmutated genomes.
func (a *Analyzer) ThresholdCurves(rows []types.Row) (*types.Table, error) {
	sel := aggregate.Filter(rows, func(r types.Row) bool {
		return near(r.Point.Window, a.point.Window) && near(r.Point.Step, a.point.Step) && atMutRate(0)(r)
	})
	if err := aggregate.Require(sel, "GeAnno rows at the window and step"); err != nil {
		return nil, err
	}

	by := []aggregate.Dim{aggregate.Tool, aggregate.Threshold}
	groups, err := aggregate.Mean(a.modelLabelled(sel), by, aggregate.Metrics)
	if err != nil {
		return nil, err
	}
	return aggregate.ToTable("geanno_metrics_by_threshold", "GeAnno metrics by threshold", by, aggregate.Metrics, groups, false), nil
}

// WindowStepBySpecies summarizes unmutated GeAnno runs per species, window
// and step, resources included.
func (a *Analyzer) WindowStepBySpecies(rows []types.Row) (*types.Table, error) {
	sel := aggregate.Filter(rows, atMutRate(0))
	if err := aggregate.Require(sel, "unmutated GeAnno rows"); err != nil {
		return nil, err
	}

	by := []aggregate.Dim{aggregate.Species, aggregate.SpeciesLabel, aggregate.Window, aggregate.Step}
	measures := []aggregate.Measure{
		aggregate.Time, aggregate.RAM,
		aggregate.Sensitivity, aggregate.Specificity,
		aggregate.Precision, aggregate.Recall, aggregate.F1,
	}
	// every row counts toward N through runs
	runs := aggregate.Measure{Name: "n_runs", Value: func(types.Row) types.Score { return types.Some(1) }}
	groups, err := aggregate.Mean(sel, by, append(measures, runs))
	if err != nil {
		return nil, err
	}

	t := types.NewTable("geanno_window_step_by_species", "GeAnno by window and step", "species", "species_label", "window", "step", "n_runs")
	for _, m := range measures {
		t.Columns = append(t.Columns, "mean_"+m.Name)
	}
	for _, g := range groups {
		cells := append(append([]types.Cell{}, g.Keys...), types.FloatCell(float64(g.N)))
		for _, v := range g.Values[:len(measures)] {
			cells = append(cells, types.NumCell(v))
		}
		t.Append(cells...)
	}
	return t, nil
}
