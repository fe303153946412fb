package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/su1ph3r/annobench/internal/canon"
	"github.com/su1ph3r/annobench/pkg/types"
)

func row(species, tool string, hint types.Hint, f1 float64) types.Row {
	return types.Row{
		Species:   species,
		ToolLabel: tool,
		Hint:      hint,
		MutRate:   types.Some(0),
		Metrics:   types.Metrics{Precision: types.Some(f1), Recall: types.Some(f1), F1: types.Some(f1)},
	}
}

func repeat(n int, r types.Row) []types.Row {
	out := make([]types.Row, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestMacroMeanWeightsHintsEqually(t *testing.T) {
	var rows []types.Row
	rows = append(rows, repeat(10, row("oryza_sativa", "GeMoMa", types.HintGenus, 0.8))...)
	rows = append(rows, repeat(10, row("oryza_sativa", "GeMoMa", types.HintOrder, 0.6))...)
	rows = append(rows, repeat(2, row("oryza_sativa", "GeMoMa", types.HintFar, 0.2))...)

	groups, err := MacroMean(rows, []Dim{Species, Tool}, []Dim{Hint}, []Measure{F1})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.InDelta(t, (0.8+0.6+0.2)/3, groups[0].Values[0].Value, 1e-12)
	assert.Equal(t, 3, groups[0].N)

	flat, err := Mean(rows, []Dim{Species, Tool}, []Measure{F1})
	require.NoError(t, err)
	assert.InDelta(t, (10*0.8+10*0.6+2*0.2)/22, flat[0].Values[0].Value, 1e-12)
	assert.NotEqual(t, groups[0].Values[0], flat[0].Values[0])
}

func TestMacroMeanThreeStages(t *testing.T) {
	rows := []types.Row{
		row("a_a", "X", types.HintGenus, 1.0),
		row("a_a", "X", types.HintGenus, 0.0),
		row("a_a", "X", types.HintFar, 1.0),
		row("b_b", "X", types.HintGenus, 0.0),
	}

	groups, err := MacroMean(rows, []Dim{Tool}, []Dim{Species, Hint}, []Measure{F1})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	// a_a: (0.5 + 1.0)/2 = 0.75, b_b: 0.0
	assert.InDelta(t, 0.375, groups[0].Values[0].Value, 1e-12)
}

func TestMeanSkipsNulls(t *testing.T) {
	a := row("a_a", "X", types.HintNone, 0.5)
	b := row("a_a", "X", types.HintNone, 0)
	b.F1 = types.Null
	c := row("b_b", "X", types.HintNone, 0)
	c.F1 = types.Null

	groups, err := Mean([]types.Row{a, b, c}, []Dim{Species}, []Measure{F1})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, types.Some(0.5), groups[0].Values[0])
	assert.False(t, groups[1].Values[0].Valid, "all-null group yields null")
}

func TestMeanEmptyIsDistinct(t *testing.T) {
	_, err := Mean(nil, []Dim{Species}, Metrics)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrEmptyResult))

	var eerr *types.EmptyResultError
	assert.True(t, errors.As(err, &eerr))
}

func TestMeanSortsByKeys(t *testing.T) {
	mk := func(mut float64) types.Row {
		r := row("a_a", "X", types.HintNone, mut)
		r.MutRate = types.Some(mut)
		return r
	}
	rows := []types.Row{mk(0.07), mk(0), mk(0.04), mk(0.01)}

	groups, err := Mean(rows, []Dim{MutRate}, []Measure{F1})
	require.NoError(t, err)

	var got []float64
	for _, g := range groups {
		got = append(got, g.Keys[0].Num.Value)
	}
	assert.Equal(t, []float64{0, 0.01, 0.04, 0.07}, got)
}

func TestSampleStd(t *testing.T) {
	rows := []types.Row{
		row("a_a", "X", types.HintNone, 0.2),
		row("a_a", "X", types.HintNone, 0.4),
		row("b_b", "X", types.HintNone, 0.4),
	}

	groups, err := Mean(rows, []Dim{Species}, []Measure{F1})
	require.NoError(t, err)
	assert.InDelta(t, 0.141421356, groups[0].Std[0].Value, 1e-6)
	assert.False(t, groups[1].Std[0].Valid)
}

func TestPerKbAndSized(t *testing.T) {
	c := canon.New(nil)
	rows := []types.Row{
		{Species: "arabidopsis_thaliana", RAMMB: types.Some(302.1)},
		{Species: "zea_mays", RAMMB: types.Some(50)},
	}

	sized := Sized(c, rows)
	require.Len(t, sized, 1)

	groups, err := Mean(sized, []Dim{Species}, []Measure{PerKb(c, RAM)})
	require.NoError(t, err)
	assert.InDelta(t, 0.01, groups[0].Values[0].Value, 1e-12)
}

func TestToTable(t *testing.T) {
	rows := []types.Row{row("a_a", "X", types.HintNone, 0.5)}
	groups, err := Mean(rows, []Dim{Species, Tool}, Metrics)
	require.NoError(t, err)

	tbl := ToTable("t", "T", []Dim{Species, Tool}, Metrics, groups, true)
	assert.Equal(t, []string{"species", "tool_label", "precision", "precision_std", "recall", "recall_std", "f1", "f1_std"}, tbl.Columns)
	require.Equal(t, 1, tbl.Len())

	f1, ok := tbl.Get(0, "f1")
	require.True(t, ok)
	assert.Equal(t, types.Some(0.5), f1.Num)
}

func TestFilters(t *testing.T) {
	a := row("a_a", "X", types.HintNone, 1)
	a.MutRate = types.Some(0.07)
	a.Setting = types.SettingEvidence
	b := row("b_b", "X", types.HintNone, 1)

	assert.Len(t, Filter([]types.Row{a, b}, AtMutRate(0.07)), 1)
	assert.Len(t, Filter([]types.Row{a, b}, InSetting(types.SettingEvidence)), 1)
	assert.Len(t, Filter([]types.Row{a, b}, OfSpecies("b_b")), 1)
	assert.True(t, HasMutRate([]types.Row{a, b}, 0))
	assert.False(t, HasMutRate([]types.Row{a, b}, 0.04))
	assert.Error(t, Require(nil, "nothing"))
}
