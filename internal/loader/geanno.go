package loader

import (
	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/normalizer"
	"github.com/su1ph3r/annobench/internal/tabular"
	"github.com/su1ph3r/annobench/pkg/types"
)

// GeAnno export columns and the names they are known by
var (
	colSpecies   = []string{"species"}
	colModel     = []string{"model", "tool"}
	colTime      = []string{"time", "time_sec"}
	colMemKb     = []string{"mem", "ram_kb"}
	colMutRate   = []string{"mutation_rate", "mut_rate"}
	colWindow    = []string{"window", "win"}
	colStep      = []string{"step", "stride"}
	colThreshold = []string{"threshold", "thr"}
)

// LoadGeAnnoDir loads GeAnno metric exports. Every file must carry species
// and model columns; runtime, memory, mutation rate and operating point
// columns are optional and null when absent. Memory is exported in KB and
// carried as MB.
func (l *Loader) LoadGeAnnoDir(dir string) (*Dataset, error) {
	files, err := csvFiles(dir, nil)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	b := newBatch(dir)
	for _, path := range files {
		if err := l.readGeAnnoFile(path, b); err != nil {
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

	log.Debug().Str("dir", dir).Int("files", ds.Files).Int("rows", len(ds.Rows)).Msg("loaded GeAnno exports")
	return ds, nil
}

func (l *Loader) readGeAnnoFile(path string, b *batch) error {
	t, err := tabular.ReadFile(path)
	if err != nil {
		return err
	}

	speciesCol, err := t.MustColumn(colSpecies...)
	if err != nil {
		return err
	}
	modelCol, err := t.MustColumn(colModel...)
	if err != nil {
		return err
	}

	cols, observe := readMetrics(t)
	if _, err := normalizer.DetectSource(cols, t.Name); err != nil {
		return err
	}

	timeCol, _ := t.Column(colTime...)
	memCol, _ := t.Column(colMemKb...)
	mutCol, _ := t.Column(colMutRate...)
	winCol, _ := t.Column(colWindow...)
	stepCol, _ := t.Column(colStep...)
	thrCol, _ := t.Column(colThreshold...)

	rows := make([]types.Row, t.Len())
	for i := range rows {
		model := t.String(i, modelCol)
		rows[i] = types.Row{
			Kind:    types.ToolGeAnno,
			Tool:    model,
			Species: t.String(i, speciesCol),
			MutRate: t.Float(i, mutCol),
			Point: types.OperatingPoint{
				Window:    t.Float(i, winCol),
				Step:      t.Float(i, stepCol),
				Threshold: t.Float(i, thrCol),
			},
			TimeSec: t.Float(i, timeCol),
			RAMMB:   t.Float(i, memCol).Scale(1.0 / 1024),
			Counts:  observe(i),
			File:    t.Name,
		}
	}
	b.add(cols, rows)
	return nil
}
