package analysis

import (
	"strings"

	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

// preferredSpecies is the row order of the percentage tables
var preferredSpecies = []string{"A. thaliana", "G. raimondii", "M. esculenta", "O. sativa"}

var metricTitles = []string{"Precision", "Recall", "F1-score"}

// avgRow labels the per-metric column means of a percentage table
const avgRow = "Avg."

// percentTable lays out groups keyed by (species label, column label) as
// one block per metric: a row per species with values in percent, then an
// Avg. row of the rounded column values.
func (a *Analyzer) percentTable(name, title string, groups []aggregate.Group, columns []string) *types.Table {
	type cellKey struct{ species, column string }
	cells := make(map[cellKey][]types.Score)
	seen := make(map[string]bool)
	var appearance []string
	for _, g := range groups {
		sp := g.Keys[0].Text
		cells[cellKey{sp, g.Keys[1].Text}] = g.Values
		if !seen[sp] {
			seen[sp] = true
			appearance = append(appearance, sp)
		}
	}

	var species []string
	for _, sp := range preferredSpecies {
		if seen[sp] {
			species = append(species, sp)
		}
	}
	if len(species) == 0 {
		species = appearance
	}

	t := types.NewTable(name, title, append([]string{"Metric", "Species"}, columns...)...)
	for m, mtitle := range metricTitles {
		colValues := make([][]types.Score, len(columns))
		for _, sp := range species {
			row := []types.Cell{types.TextCell(mtitle), types.TextCell(sp)}
			for c, col := range columns {
				v := types.Null
				if vals, ok := cells[cellKey{sp, col}]; ok {
					v = round(vals[m].Scale(100), a.decimals)
				}
				colValues[c] = append(colValues[c], v)
				row = append(row, types.NumCell(v))
			}
			t.Append(row...)
		}

		avg := []types.Cell{types.TextCell(mtitle), types.TextCell(avgRow)}
		for c := range columns {
			avg = append(avg, types.NumCell(round(aggregate.MeanOf(colValues[c]), a.decimals)))
		}
		t.Append(avg...)
	}
	return t
}

// presentColumns keeps the entries of order that some group carries in
// its second key
func presentColumns(groups []aggregate.Group, order []string) []string {
	have := make(map[string]bool)
	for _, g := range groups {
		have[g.Keys[1].Text] = true
	}
	var out []string
	for _, c := range order {
		if have[c] {
			out = append(out, c)
		}
	}
	return out
}

// AllToolsTable compares every tool on unmutated genomes, in percent, one
// column per tool and the GeAnno reference last. Evidence-based tools are
// averaged over hints first.
func (a *Analyzer) AllToolsTable(in Inputs) (*types.Table, error) {
	bench := relabel(aggregate.Filter(in.Bench, atMutRate(0)), func(r types.Row) string {
		if r.Kind == types.ToolSNAP {
			return strings.TrimSuffix(r.ToolLabel, ")") + "*)"
		}
		return r.ToolLabel
	})
	ref := aggregate.Filter(a.reference(in.GeAnno), atMutRate(0))

	by := []aggregate.Dim{aggregate.SpeciesLabel, aggregate.Tool}
	groups := concat(
		meanOrNone(abInitio(bench), by, aggregate.Metrics),
		macroOrNone(evidence(bench), by, []aggregate.Dim{aggregate.Hint}, aggregate.Metrics),
		meanOrNone(ref, by, aggregate.Metrics),
	)
	if len(groups) == 0 {
		return nil, types.NewEmptyResult("unmutated runs of any tool")
	}

	tool := func(k types.ToolKind, suffix string) string { return a.canon.ToolLabel(k) + suffix }
	order := []string{
		tool(types.ToolAugustus, " (ab initio)"),
		tool(types.ToolSNAP, " ("+a.canon.SnapBucket("arabidopsis_thaliana")+"*)"),
		tool(types.ToolSNAP, " ("+a.canon.SnapBucket("oryza_sativa")+"*)"),
		tool(types.ToolGeneMarkES, ""),
		tool(types.ToolGeneMarkEP, ""),
		tool(types.ToolGeneMarkETP, ""),
		tool(types.ToolGeMoMa, ""),
		tool(types.ToolAugustus, " (hints)"),
		a.referenceLabel(),
	}
	return a.percentTable("all_tools_table", "All tools on unmutated genomes", groups, presentColumns(groups, order)), nil
}
