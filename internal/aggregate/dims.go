package aggregate

import (
	"github.com/su1ph3r/annobench/internal/canon"
	"github.com/su1ph3r/annobench/pkg/types"
)

// Dim is a grouping dimension
type Dim struct {
	Name  string
	Value func(types.Row) types.Cell
}

// Grouping dimensions
var (
	Species      = Dim{"species", func(r types.Row) types.Cell { return types.TextCell(r.Species) }}
	SpeciesLabel = Dim{"species_label", func(r types.Row) types.Cell { return types.TextCell(r.SpeciesLabel) }}
	Tool         = Dim{"tool_label", func(r types.Row) types.Cell { return types.TextCell(r.ToolLabel) }}
	Model        = Dim{"tool", func(r types.Row) types.Cell { return types.TextCell(r.Tool) }}
	MutRate      = Dim{"mut_rate", func(r types.Row) types.Cell { return types.NumCell(r.MutRate) }}
	Hint         = Dim{"hint", func(r types.Row) types.Cell { return types.TextCell(string(r.Hint)) }}
	Setting      = Dim{"setting", func(r types.Row) types.Cell { return types.TextCell(string(r.Setting)) }}
	Window       = Dim{"window", func(r types.Row) types.Cell { return types.NumCell(r.Point.Window) }}
	Step         = Dim{"step", func(r types.Row) types.Cell { return types.NumCell(r.Point.Step) }}
	Threshold    = Dim{"threshold", func(r types.Row) types.Cell { return types.NumCell(r.Point.Threshold) }}
)

// Measure is an averaged quantity
type Measure struct {
	Name  string
	Value func(types.Row) types.Score
}

// Measures
var (
	Precision = Measure{"precision", func(r types.Row) types.Score { return r.Precision }}
	Recall    = Measure{"recall", func(r types.Row) types.Score { return r.Recall }}
	F1        = Measure{"f1", func(r types.Row) types.Score { return r.F1 }}
	RAM       = Measure{"ram_mb", func(r types.Row) types.Score { return r.RAMMB }}
	Time      = Measure{"time_sec", func(r types.Row) types.Score { return r.TimeSec }}

	Sensitivity = Measure{"sensitivity", func(r types.Row) types.Score { return r.Counts.Sensitivity }}
	Specificity = Measure{"specificity", func(r types.Row) types.Score { return r.Counts.Specificity }}
)

// Metrics is the usual precision/recall/F1 triple
var Metrics = []Measure{Precision, Recall, F1}

// PerKb divides m by the species genome size. Rows without a size yield
// null; use Sized to drop them from the view first.
func PerKb(c *canon.Canonicalizer, m Measure) Measure {
	return Measure{
		Name: m.Name + "_per_kb",
		Value: func(r types.Row) types.Score {
			v, _ := c.PerKb(m.Value(r), r.Species)
			return v
		},
	}
}

// Sized keeps the rows whose species has a reference genome size
func Sized(c *canon.Canonicalizer, rows []types.Row) []types.Row {
	return Filter(rows, func(r types.Row) bool {
		_, ok := c.GenomeSizeKb(r.Species)
		return ok
	})
}
