// Package aggregate computes grouped means over normalized rows. Every
// function is a pure reduction; nulls are skipped and an all-null group
// yields null.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/su1ph3r/annobench/pkg/types"
)

// mutRateTolerance is used when matching mutation rates
const mutRateTolerance = 1e-9

// Group is one row of an aggregate table
type Group struct {
	Keys   []types.Cell
	Values []types.Score
	Std    []types.Score // sample standard deviation, null below two values
	N      int           // contributing items
}

type item struct {
	keys   []types.Cell
	values []types.Score
}

// Mean groups rows by dims and averages every measure per group. An empty
// input is reported as *types.EmptyResultError rather than as null means.
func Mean(rows []types.Row, by []Dim, measures []Measure) ([]Group, error) {
	if len(rows) == 0 {
		return nil, types.NewEmptyResult("grouping by %s", dimNames(by))
	}
	return reduce(itemsOf(rows, by, measures), len(by), len(measures)), nil
}

// MacroMean averages in stages: first within each group of by+over, then
// across the over dimensions one at a time, innermost first. With over =
// [Hint] each hint contributes equally to the (by) mean regardless of how
// many rows it has.
func MacroMean(rows []types.Row, by []Dim, over []Dim, measures []Measure) ([]Group, error) {
	all := append(append([]Dim{}, by...), over...)
	groups, err := Mean(rows, all, measures)
	if err != nil {
		return nil, err
	}
	for keep := len(all) - 1; keep >= len(by); keep-- {
		groups = Collapse(groups, keep)
	}
	return groups, nil
}

// Collapse averages groups over every key past the first keep
func Collapse(groups []Group, keep int) []Group {
	items := make([]item, len(groups))
	for i, g := range groups {
		items[i] = item{keys: g.Keys[:keep], values: g.Values}
	}
	nm := 0
	if len(groups) > 0 {
		nm = len(groups[0].Values)
	}
	return reduce(items, keep, nm)
}

func itemsOf(rows []types.Row, by []Dim, measures []Measure) []item {
	items := make([]item, len(rows))
	for i, r := range rows {
		it := item{
			keys:   make([]types.Cell, len(by)),
			values: make([]types.Score, len(measures)),
		}
		for j, d := range by {
			it.keys[j] = d.Value(r)
		}
		for j, m := range measures {
			it.values[j] = m.Value(r)
		}
		items[i] = it
	}
	return items
}

func reduce(items []item, nKeys, nMeasures int) []Group {
	index := make(map[string]int)
	var keys [][]types.Cell
	var buckets [][][]float64

	for _, it := range items {
		k := keyString(it.keys)
		gi, ok := index[k]
		if !ok {
			gi = len(keys)
			index[k] = gi
			keys = append(keys, it.keys)
			buckets = append(buckets, make([][]float64, nMeasures))
		}
		for j, v := range it.values {
			if v.Valid {
				buckets[gi][j] = append(buckets[gi][j], v.Value)
			}
		}
	}

	groups := make([]Group, len(keys))
	for gi := range keys {
		g := Group{
			Keys:   keys[gi],
			Values: make([]types.Score, nMeasures),
			Std:    make([]types.Score, nMeasures),
		}
		for j, vals := range buckets[gi] {
			g.Values[j] = mean(vals)
			g.Std[j] = sampleStd(vals)
			if len(vals) > g.N {
				g.N = len(vals)
			}
		}
		groups[gi] = g
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return lessKeys(groups[a].Keys, groups[b].Keys)
	})
	return groups
}

func mean(vals []float64) types.Score {
	if len(vals) == 0 {
		return types.Null
	}
	m, err := stats.Mean(stats.Float64Data(vals))
	if err != nil {
		return types.Null
	}
	return types.Some(m)
}

func sampleStd(vals []float64) types.Score {
	if len(vals) < 2 {
		return types.Null
	}
	s, err := stats.StandardDeviationSample(stats.Float64Data(vals))
	if err != nil {
		return types.Null
	}
	return types.Some(s)
}

func keyString(keys []types.Cell) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if k.Numeric && !k.Num.Valid {
			parts[i] = "\x00null"
			continue
		}
		parts[i] = k.Format(-1)
	}
	return strings.Join(parts, "\x1f")
}

func lessKeys(a, b []types.Cell) bool {
	for i := range a {
		if c := compareCells(a[i], b[i]); c != 0 {
			return c < 0
		}
	}
	return false
}

func compareCells(a, b types.Cell) int {
	if a.Numeric && b.Numeric {
		switch {
		case a.Num.Valid != b.Num.Valid:
			if !a.Num.Valid {
				return -1
			}
			return 1
		case a.Num.Value < b.Num.Value:
			return -1
		case a.Num.Value > b.Num.Value:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Text, b.Text)
}

func dimNames(dims []Dim) string {
	if len(dims) == 0 {
		return "nothing"
	}
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}

// Filter returns the rows matching keep
func Filter(rows []types.Row, keep func(types.Row) bool) []types.Row {
	var out []types.Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// AtMutRate matches rows recorded at mutation rate x
func AtMutRate(x float64) func(types.Row) bool {
	return func(r types.Row) bool {
		return r.MutRate.Valid && math.Abs(r.MutRate.Value-x) < mutRateTolerance
	}
}

// InSetting matches rows of the given setting
func InSetting(s types.Setting) func(types.Row) bool {
	return func(r types.Row) bool { return r.Setting == s }
}

// OfSpecies matches rows of one species code
func OfSpecies(species string) func(types.Row) bool {
	return func(r types.Row) bool { return r.Species == species }
}

// HasMutRate reports whether any row was recorded at mutation rate x
func HasMutRate(rows []types.Row, x float64) bool {
	for _, r := range rows {
		if AtMutRate(x)(r) {
			return true
		}
	}
	return false
}

// Require returns an empty-result error naming what when rows is empty
func Require(rows []types.Row, what string) error {
	if len(rows) == 0 {
		return &types.EmptyResultError{What: what}
	}
	return nil
}

// ToTable renders groups as a tidy table: one column per dim, then one per
// measure, plus "<measure>_std" columns when withStd is set.
func ToTable(name, title string, by []Dim, measures []Measure, groups []Group, withStd bool) *types.Table {
	cols := make([]string, 0, len(by)+2*len(measures))
	for _, d := range by {
		cols = append(cols, d.Name)
	}
	for _, m := range measures {
		cols = append(cols, m.Name)
		if withStd {
			cols = append(cols, m.Name+"_std")
		}
	}

	t := types.NewTable(name, title, cols...)
	for _, g := range groups {
		cells := make([]types.Cell, 0, len(cols))
		cells = append(cells, g.Keys...)
		for j := range measures {
			cells = append(cells, types.NumCell(g.Values[j]))
			if withStd {
				cells = append(cells, types.NumCell(g.Std[j]))
			}
		}
		t.Append(cells...)
	}
	return t
}

// MeanOf averages the valid scores; null when there are none
func MeanOf(scores []types.Score) types.Score {
	var vals []float64
	for _, s := range scores {
		if s.Valid {
			vals = append(vals, s.Value)
		}
	}
	return mean(vals)
}
