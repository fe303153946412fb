// Package normalizer turns raw per-run metric columns into precision, recall
// and F1 fractions.
package normalizer

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/pkg/types"
)

// Options controls one normalization call. The null policy applies to the
// whole table.
type Options struct {
	NullPolicy      string // types.NullPolicyPropagate or types.NullPolicyZeroFill
	DropEmptyCounts bool   // drop rows with tp+fp+fn == 0 before computing
	Table           string // name used in errors and logs
}

// DefaultOptions propagates nulls and drops empty count rows
func DefaultOptions() Options {
	return Options{
		NullPolicy:      types.NullPolicyPropagate,
		DropEmptyCounts: true,
	}
}

// Source tells which columns the metrics were computed from
type Source int

const (
	SourceCounts Source = iota
	SourceSensSpec
	SourcePrecisionRecall
)

func (s Source) String() string {
	switch s {
	case SourceCounts:
		return "tp/fp/fn"
	case SourceSensSpec:
		return "sensitivity/specificity"
	}
	return "precision/recall"
}

// Result is the normalized table plus what happened to it
type Result struct {
	Rows     []types.Row
	Source   Source
	Rescaled []string // metric columns that were divided by 100
	Dropped  int      // rows removed for having no counts
}

// Normalize fills the Metrics of every row from its raw Counts. cols tells
// which raw columns the source table carries. The input slice is not
// modified.
func Normalize(rows []types.Row, cols types.ColumnSet, opts Options) (Result, error) {
	src, err := DetectSource(cols, opts.Table)
	if err != nil {
		return Result{}, err
	}

	res := Result{Source: src, Rows: make([]types.Row, 0, len(rows))}
	for _, r := range rows {
		if src == SourceCounts && opts.DropEmptyCounts && emptyCounts(r.Counts) {
			res.Dropped++
			continue
		}
		res.Rows = append(res.Rows, r)
	}

	out := res.Rows
	providedF1 := src != SourceCounts && cols.Has(types.ColF1)

	for i := range out {
		c := out[i].Counts
		switch src {
		case SourceCounts:
			out[i].Precision = types.Ratio(c.TP, c.TP.Add(c.FP))
			out[i].Recall = types.Ratio(c.TP, c.TP.Add(c.FN))
		case SourceSensSpec:
			out[i].Precision = c.Specificity
			out[i].Recall = c.Sensitivity
		case SourcePrecisionRecall:
			out[i].Precision = c.Precision
			out[i].Recall = c.Recall
		}
		if providedF1 {
			out[i].F1 = c.F1
		}
	}

	if rescale(out, func(r *types.Row) *types.Score { return &r.Precision }) {
		res.Rescaled = append(res.Rescaled, "precision")
	}
	if rescale(out, func(r *types.Row) *types.Score { return &r.Recall }) {
		res.Rescaled = append(res.Rescaled, "recall")
	}
	if providedF1 && rescale(out, func(r *types.Row) *types.Score { return &r.F1 }) {
		res.Rescaled = append(res.Rescaled, "f1")
	}

	for i := range out {
		m := &out[i].Metrics
		m.Precision = clip(m.Precision)
		m.Recall = clip(m.Recall)
		if providedF1 {
			m.F1 = clip(m.F1)
		} else {
			m.F1 = types.HarmonicMean(m.Precision, m.Recall)
		}
		if opts.NullPolicy == types.NullPolicyZeroFill {
			zeroFill(m)
		}
	}

	if len(res.Rescaled) > 0 {
		log.Debug().
			Str("table", opts.Table).
			Strs("columns", res.Rescaled).
			Msg("rescaled percentage metrics to fractions")
	}
	if res.Dropped > 0 {
		log.Debug().
			Str("table", opts.Table).
			Int("rows", res.Dropped).
			Msg("dropped rows with tp+fp+fn == 0")
	}

	return res, nil
}

// Metrics computes the metrics of a single count triple with null
// propagation.
func Metrics(tp, fp, fn float64) types.Metrics {
	p := types.Ratio(types.Some(tp), types.Some(tp+fp))
	r := types.Ratio(types.Some(tp), types.Some(tp+fn))
	return types.Metrics{Precision: p, Recall: r, F1: types.HarmonicMean(p, r)}
}

// DetectSource picks the metric source of a table from its columns, in the
// order counts, sensitivity/specificity, precision/recall. A table with
// none of them complete yields a *types.MissingColumnError.
func DetectSource(cols types.ColumnSet, table string) (Source, error) {
	switch {
	case cols.Has(types.ColCounts):
		return SourceCounts, nil
	case cols.Has(types.ColSensitivity | types.ColSpecificity):
		return SourceSensSpec, nil
	case cols.Has(types.ColPrecision | types.ColRecall):
		return SourcePrecisionRecall, nil
	}

	// name the first missing column of the most complete source
	if cols&(types.ColSensitivity|types.ColSpecificity) != 0 {
		if !cols.Has(types.ColSensitivity) {
			return 0, &types.MissingColumnError{Table: table, Column: "sensitivity"}
		}
		return 0, &types.MissingColumnError{Table: table, Column: "specificity"}
	}
	if cols&(types.ColPrecision|types.ColRecall) != 0 {
		if !cols.Has(types.ColPrecision) {
			return 0, &types.MissingColumnError{Table: table, Column: "precision"}
		}
		return 0, &types.MissingColumnError{Table: table, Column: "recall"}
	}
	for _, c := range []struct {
		col  types.ColumnSet
		name string
	}{{types.ColTP, "tp"}, {types.ColFP, "fp"}, {types.ColFN, "fn"}} {
		if !cols.Has(c.col) {
			return 0, &types.MissingColumnError{Table: table, Column: c.name}
		}
	}
	return 0, &types.MissingColumnError{Table: table, Column: "tp"}
}

func emptyCounts(c types.Observation) bool {
	return c.TP.OrZero()+c.FP.OrZero()+c.FN.OrZero() == 0
}

// rescale divides the whole column by 100 when its maximum exceeds 1
func rescale(rows []types.Row, col func(*types.Row) *types.Score) bool {
	hi := math.Inf(-1)
	for i := range rows {
		if s := col(&rows[i]); s.Valid && s.Value > hi {
			hi = s.Value
		}
	}
	if hi <= 1 {
		return false
	}
	for i := range rows {
		s := col(&rows[i])
		*s = s.Scale(0.01)
	}
	return true
}

func clip(s types.Score) types.Score {
	if !s.Valid {
		return s
	}
	return types.Some(math.Min(1, math.Max(0, s.Value)))
}

func zeroFill(m *types.Metrics) {
	if !m.Precision.Valid {
		m.Precision = types.Some(0)
	}
	if !m.Recall.Valid {
		m.Recall = types.Some(0)
	}
	if !m.F1.Valid {
		m.F1 = types.Some(0)
	}
}
