// Package loader ingests benchmark result directories, GeAnno exports and
// AUC exports into normalized, annotated rows.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/canon"
	"github.com/su1ph3r/annobench/internal/decoder"
	"github.com/su1ph3r/annobench/internal/normalizer"
	"github.com/su1ph3r/annobench/internal/tabular"
	"github.com/su1ph3r/annobench/pkg/types"
)

// EvalLabel is the only per-run label whose sensitivity/specificity stand
// for recall/precision
const EvalLabel = "gene_nucleotide"

// Options controls a load
type Options struct {
	// SkipInvalid excludes files that fail to decode or lack required
	// columns instead of aborting the load
	SkipInvalid bool
	Normalize   normalizer.Options
}

// DefaultOptions aborts on invalid files and uses the default normalizer
// policy
func DefaultOptions() Options {
	return Options{Normalize: normalizer.DefaultOptions()}
}

// Dataset is the outcome of one load
type Dataset struct {
	Rows        []types.Row
	Files       int
	Diagnostics []types.Diagnostic
}

// Loader reads result files
type Loader struct {
	canon *canon.Canonicalizer
	opts  Options
}

// New creates a loader. A nil canonicalizer selects the default tables.
func New(c *canon.Canonicalizer, opts Options) *Loader {
	if c == nil {
		c = canon.New(nil)
	}
	return &Loader{canon: c, opts: opts}
}

// metric columns and their aliases
var metricColumns = []struct {
	col     types.ColumnSet
	aliases []string
	set     func(*types.Observation, types.Score)
}{
	{types.ColTP, []string{"tp"}, func(o *types.Observation, s types.Score) { o.TP = s }},
	{types.ColFP, []string{"fp"}, func(o *types.Observation, s types.Score) { o.FP = s }},
	{types.ColFN, []string{"fn"}, func(o *types.Observation, s types.Score) { o.FN = s }},
	{types.ColSensitivity, []string{"sensitivity", "sens"}, func(o *types.Observation, s types.Score) { o.Sensitivity = s }},
	{types.ColSpecificity, []string{"specificity", "spec"}, func(o *types.Observation, s types.Score) { o.Specificity = s }},
	{types.ColPrecision, []string{"precision"}, func(o *types.Observation, s types.Score) { o.Precision = s }},
	{types.ColRecall, []string{"recall"}, func(o *types.Observation, s types.Score) { o.Recall = s }},
	{types.ColF1, []string{"f1"}, func(o *types.Observation, s types.Score) { o.F1 = s }},
}

// pending collects raw rows sharing one column layout so they are
// normalized as one table
type pending struct {
	cols types.ColumnSet
	rows []types.Row
}

type batch struct {
	name   string
	groups map[types.ColumnSet]*pending
	order  []types.ColumnSet
}

func newBatch(name string) *batch {
	return &batch{name: name, groups: make(map[types.ColumnSet]*pending)}
}

func (b *batch) add(cols types.ColumnSet, rows []types.Row) {
	p, ok := b.groups[cols]
	if !ok {
		p = &pending{cols: cols}
		b.groups[cols] = p
		b.order = append(b.order, cols)
	}
	p.rows = append(p.rows, rows...)
}

func (b *batch) normalize(opts normalizer.Options, ds *Dataset) error {
	opts.Table = b.name
	for _, cols := range b.order {
		res, err := normalizer.Normalize(b.groups[cols].rows, cols, opts)
		if err != nil {
			return err
		}
		if len(res.Rescaled) > 0 {
			ds.Diagnostics = append(ds.Diagnostics, types.Diagnostic{
				Kind:    types.DiagRescaledData,
				Subject: b.name,
				Message: fmt.Sprintf("%s columns rescaled from percentages: %s", res.Source, strings.Join(res.Rescaled, ", ")),
			})
		}
		if res.Dropped > 0 {
			ds.Diagnostics = append(ds.Diagnostics, types.Diagnostic{
				Kind:    types.DiagDroppedRows,
				Subject: b.name,
				Message: fmt.Sprintf("%d rows with tp+fp+fn == 0 dropped", res.Dropped),
			})
		}
		ds.Rows = append(ds.Rows, res.Rows...)
	}
	return nil
}

// readMetrics extracts the metric columns of a table
func readMetrics(t *tabular.Table) (types.ColumnSet, func(i int) types.Observation) {
	var cols types.ColumnSet
	idx := make([]int, len(metricColumns))
	for j, mc := range metricColumns {
		var ok bool
		if idx[j], ok = t.Column(mc.aliases...); ok {
			cols |= mc.col
		}
	}
	return cols, func(i int) types.Observation {
		var o types.Observation
		for j, mc := range metricColumns {
			if idx[j] >= 0 {
				mc.set(&o, t.Float(i, idx[j]))
			}
		}
		return o
	}
}

// skip records an invalid file. It returns err unchanged unless the loader
// is configured to skip invalid files.
func (l *Loader) skip(ds *Dataset, name string, err error) error {
	if !l.opts.SkipInvalid {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	log.Warn().Str("file", name).Err(err).Msg("skipping invalid result file")
	ds.Diagnostics = append(ds.Diagnostics, types.Diagnostic{
		Kind:    types.DiagSkippedFile,
		Subject: name,
		Message: err.Error(),
	})
	return nil
}

// csvFiles lists the .csv files of dir in name order
func csvFiles(dir string, keep func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !decoder.IsResultFile(e.Name()) {
			continue
		}
		if keep != nil && !keep(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
