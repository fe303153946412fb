package analysis

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

const pointTolerance = 1e-9

func abInitio(rows []types.Row) []types.Row {
	return aggregate.Filter(rows, aggregate.InSetting(types.SettingAbInitio))
}

func evidence(rows []types.Row) []types.Row {
	return aggregate.Filter(rows, aggregate.InSetting(types.SettingEvidence))
}

// atMutRate matches rows at mutation rate x; GeAnno rows without a
// mutation rate count as unmutated
func atMutRate(x float64) func(types.Row) bool {
	exact := aggregate.AtMutRate(x)
	return func(r types.Row) bool {
		if !r.MutRate.Valid {
			return x == 0
		}
		return exact(r)
	}
}

func near(s types.Score, x float64) bool {
	return s.Valid && math.Abs(s.Value-x) < pointTolerance
}

// atFixedPoint keeps GeAnno rows at the configured window, step and
// threshold. A parameter no row carries does not filter.
func (a *Analyzer) atFixedPoint(rows []types.Row) []types.Row {
	var hasWin, hasStep, hasThr bool
	for _, r := range rows {
		hasWin = hasWin || r.Point.Window.Valid
		hasStep = hasStep || r.Point.Step.Valid
		hasThr = hasThr || r.Point.Threshold.Valid
	}

	out := aggregate.Filter(rows, func(r types.Row) bool {
		return (!hasWin || near(r.Point.Window, a.point.Window)) &&
			(!hasStep || near(r.Point.Step, a.point.Step)) &&
			(!hasThr || near(r.Point.Threshold, a.point.Threshold))
	})
	if len(rows) > 0 && len(out) == 0 {
		log.Warn().
			Float64("window", a.point.Window).
			Float64("step", a.point.Step).
			Float64("threshold", a.point.Threshold).
			Msg("no GeAnno rows at the operating point")
	}
	return out
}

// modelSubset keeps the rows of the configured GeAnno model. When no row
// matches, the rows are returned unfiltered.
func (a *Analyzer) modelSubset(rows []types.Row) []types.Row {
	want := strings.ToLower(a.point.Model)
	label := a.canon.GeAnnoLabel(a.point.Model)

	out := aggregate.Filter(rows, func(r types.Row) bool {
		return strings.Contains(strings.ToLower(r.Tool), want) || r.ToolLabel == label
	})
	if len(out) == 0 {
		log.Debug().Str("model", a.point.Model).Msg("no rows for model, keeping all GeAnno rows")
		return rows
	}
	return out
}

// reference returns the GeAnno rows that stand for the tool in cross-tool
// comparisons, all labelled with the configured model.
func (a *Analyzer) reference(rows []types.Row) []types.Row {
	label := a.referenceLabel()
	sel := a.modelSubset(a.atFixedPoint(rows))
	return relabel(sel, func(types.Row) string { return label })
}

func (a *Analyzer) referenceLabel() string {
	return a.canon.GeAnnoLabel(a.point.Model)
}

// relabel returns a copy of rows with new tool labels
func relabel(rows []types.Row, label func(types.Row) string) []types.Row {
	out := make([]types.Row, len(rows))
	for i, r := range rows {
		r.ToolLabel = label(r)
		out[i] = r
	}
	return out
}

// withCounts keeps rows whose tp, fp and fn are all present
func withCounts(rows []types.Row) []types.Row {
	return aggregate.Filter(rows, func(r types.Row) bool {
		return r.Counts.TP.Valid && r.Counts.FP.Valid && r.Counts.FN.Valid
	})
}

func concat(sets ...[]aggregate.Group) []aggregate.Group {
	var out []aggregate.Group
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// meanOrNone is aggregate.Mean treating an empty selection as no groups
func meanOrNone(rows []types.Row, by []aggregate.Dim, measures []aggregate.Measure) []aggregate.Group {
	if len(rows) == 0 {
		return nil
	}
	g, _ := aggregate.Mean(rows, by, measures)
	return g
}

// macroOrNone is aggregate.MacroMean treating an empty selection as no groups
func macroOrNone(rows []types.Row, by, over []aggregate.Dim, measures []aggregate.Measure) []aggregate.Group {
	if len(rows) == 0 {
		return nil
	}
	g, _ := aggregate.MacroMean(rows, by, over, measures)
	return g
}

func round(s types.Score, decimals int) types.Score {
	if !s.Valid {
		return s
	}
	p := math.Pow(10, float64(decimals))
	return types.Some(math.Round(s.Value*p) / p)
}

func roundGroups(groups []aggregate.Group, decimals int) []aggregate.Group {
	for i := range groups {
		for j := range groups[i].Values {
			groups[i].Values[j] = round(groups[i].Values[j], decimals)
		}
	}
	return groups
}
