package analysis

import (
	"sort"

	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

// AUCSummary lists mean AUC-ROC and AUC-PRC per species for the GeAnno
// reference model and the ab initio tools on unmutated genomes.
func (a *Analyzer) AUCSummary(in Inputs) (*types.Table, error) {
	type key struct{ species, tool string }
	type sums struct{ roc, prc []types.Score }
	acc := make(map[key]*sums)
	add := func(r types.AUCRow, tool string) {
		k := key{r.Species, tool}
		s, ok := acc[k]
		if !ok {
			s = &sums{}
			acc[k] = s
		}
		s.roc = append(s.roc, r.AUCROC)
		s.prc = append(s.prc, r.AUCPRC)
	}

	ref := a.referenceLabel()
	for _, r := range a.referenceAUC(in.GeAnnoAUC) {
		add(r, ref)
	}
	for _, r := range in.BenchAUC {
		if !r.MutRate.Valid || !near(r.MutRate, 0) {
			continue
		}
		label := a.canon.ToolLabel(r.Kind)
		if r.Kind == types.ToolAugustus {
			label += " (ab initio)"
		}
		add(r, label)
	}
	if len(acc) == 0 {
		return nil, types.NewEmptyResult("unmutated AUC measurements")
	}

	keys := make([]key, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].species != keys[j].species {
			return keys[i].species < keys[j].species
		}
		return keys[i].tool < keys[j].tool
	})

	t := types.NewTable("auc_summary", "AUC summary", "species", "species_label", "tool_label", "auc_roc", "auc_prc")
	for _, k := range keys {
		s := acc[k]
		t.Append(
			types.TextCell(k.species),
			types.TextCell(a.canon.SpeciesLabel(k.species)),
			types.TextCell(k.tool),
			types.NumCell(aggregate.MeanOf(s.roc)),
			types.NumCell(aggregate.MeanOf(s.prc)),
		)
	}
	return t, nil
}

// referenceAUC keeps the unmutated AUC rows of the configured model at the
// operating point. Operating point columns absent from the export do not
// filter.
func (a *Analyzer) referenceAUC(rows []types.AUCRow) []types.AUCRow {
	var out []types.AUCRow
	for _, r := range rows {
		if r.Tool != a.point.Model {
			continue
		}
		if r.MutRate.Valid && !near(r.MutRate, 0) {
			continue
		}
		if (r.Point.Window.Valid && !near(r.Point.Window, a.point.Window)) ||
			(r.Point.Step.Valid && !near(r.Point.Step, a.point.Step)) ||
			(r.Point.Threshold.Valid && !near(r.Point.Threshold, a.point.Threshold)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
