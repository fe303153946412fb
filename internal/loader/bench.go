package loader

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/decoder"
	"github.com/su1ph3r/annobench/internal/normalizer"
	"github.com/su1ph3r/annobench/internal/tabular"
	"github.com/su1ph3r/annobench/pkg/types"
)

// LoadBenchmarkDir loads every per-run CSV in dir. Metadata comes from the
// filename; only gene_nucleotide rows are kept. The result is normalized
// and annotated.
func (l *Loader) LoadBenchmarkDir(dir string) (*Dataset, error) {
	files, err := csvFiles(dir, func(name string) bool { return !isSideFile(name) })
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	b := newBatch(dir)
	for _, path := range files {
		if err := l.readRunFile(path, b); err != nil {
			if err := l.skip(ds, path, err); err != nil {
				return nil, err
			}
			continue
		}
		ds.Files++
	}

	if err := b.normalize(l.opts.Normalize, ds); err != nil {
		return nil, err
	}
	ds.Rows = l.canon.Annotate(ds.Rows)

	log.Debug().Str("dir", dir).Int("files", ds.Files).Int("rows", len(ds.Rows)).Msg("loaded benchmark results")
	return ds, nil
}

// sideFileSuffixes mark the AUC and curve files written next to a run
var sideFileSuffixes = []string{"_auc.csv", "_roc.csv", "_prc.csv"}

func isSideFile(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sideFileSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

func (l *Loader) readRunFile(path string, b *batch) error {
	meta, err := decoder.Decode(path)
	if err != nil {
		return err
	}

	raw, err := tabular.ReadFile(path)
	if err != nil {
		return err
	}
	labelCol, err := raw.MustColumn("label")
	if err != nil {
		return err
	}

	t := raw.Filter(func(i int) bool {
		return strings.ToLower(raw.String(i, labelCol)) == EvalLabel
	})
	if t.Len() == 0 {
		log.Debug().Str("file", t.Name).Msg("no gene_nucleotide rows")
		return nil
	}

	cols, observe := readMetrics(t)
	if _, err := normalizer.DetectSource(cols, t.Name); err != nil {
		return err
	}

	base := types.RowFromMeta(meta)
	base.File = t.Name
	rows := make([]types.Row, t.Len())
	for i := range rows {
		r := base
		r.Counts = observe(i)
		rows[i] = r
	}
	b.add(cols, rows)
	return nil
}
