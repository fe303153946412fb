package loader

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/internal/decoder"
	"github.com/su1ph3r/annobench/internal/tabular"
	"github.com/su1ph3r/annobench/pkg/types"
)

// LoadGeAnnoAUC reads a GeAnno AUC export. Column names are matched
// case-insensitively; the operating point columns are optional.
func (l *Loader) LoadGeAnnoAUC(path string) ([]types.AUCRow, error) {
	t, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	required := make(map[string]int)
	for _, c := range [][]string{colSpecies, colModel, colMutRate, {"auc_roc"}, {"auc_prc"}} {
		i, err := t.MustColumn(c...)
		if err != nil {
			return nil, err
		}
		required[c[0]] = i
	}
	winCol, _ := t.Column(colWindow...)
	stepCol, _ := t.Column(colStep...)
	thrCol, _ := t.Column(colThreshold...)

	out := make([]types.AUCRow, t.Len())
	for i := range out {
		out[i] = types.AUCRow{
			Kind:    types.ToolGeAnno,
			Tool:    t.String(i, required["model"]),
			Species: t.String(i, required["species"]),
			MutRate: t.Float(i, required["mutation_rate"]),
			Point: types.OperatingPoint{
				Window:    t.Float(i, winCol),
				Step:      t.Float(i, stepCol),
				Threshold: t.Float(i, thrCol),
			},
			AUCROC: t.Float(i, required["auc_roc"]),
			AUCPRC: t.Float(i, required["auc_prc"]),
		}
	}
	return out, nil
}

// LoadBenchAUCDir reads the ab initio "*_auc.csv" files of dir, one row per
// file holding the mean AUC values. Run metadata is decoded from the name
// with the "_auc" suffix removed; runs that do not classify as ab initio are
// ignored. Undecodable names follow the SkipInvalid policy; files without
// AUC columns are skipped with a warning.
func (l *Loader) LoadBenchAUCDir(dir string) ([]types.AUCRow, []types.Diagnostic, error) {
	files, err := csvFiles(dir, func(name string) bool {
		return strings.HasSuffix(strings.ToLower(name), "_auc.csv")
	})
	if err != nil {
		return nil, nil, err
	}

	var out []types.AUCRow
	ds := &Dataset{}
	for _, path := range files {
		row, ok, err := l.aucRun(path)
		if err != nil {
			if err := l.skip(ds, path, err); err != nil {
				return nil, nil, err
			}
			continue
		}
		if !ok {
			log.Debug().Str("file", path).Msg("not an ab initio AUC export")
			continue
		}

		t, err := tabular.ReadFile(path)
		if err == nil {
			err = fillAUC(t, &row)
		}
		if err != nil {
			log.Warn().Str("file", path).Err(err).Msg("skipping AUC export")
			ds.Diagnostics = append(ds.Diagnostics, types.Diagnostic{Kind: types.DiagSkippedFile, Subject: path, Message: err.Error()})
			continue
		}
		out = append(out, row)
	}
	return out, ds.Diagnostics, nil
}

// aucRun decodes <run>_auc.csv through the result filename decoder and
// reports whether the run is ab initio
func (l *Loader) aucRun(path string) (types.AUCRow, bool, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = stem[:len(stem)-len("_auc")]

	meta, err := decoder.Decode(stem + ".csv")
	if err != nil {
		return types.AUCRow{}, false, err
	}
	if setting, _ := l.canon.Classify(meta.Variant); setting != types.SettingAbInitio {
		return types.AUCRow{}, false, nil
	}

	kind := meta.Tool()
	return types.AUCRow{
		Kind:    kind,
		Tool:    string(kind),
		Species: meta.Species,
		MutRate: types.Some(meta.MutRate),
	}, true, nil
}

func fillAUC(t *tabular.Table, row *types.AUCRow) error {
	roc, err := t.MustColumn("auc_roc")
	if err != nil {
		return err
	}
	prc, err := t.MustColumn("auc_prc")
	if err != nil {
		return err
	}

	rocs := make([]types.Score, t.Len())
	prcs := make([]types.Score, t.Len())
	for i := range rocs {
		rocs[i] = t.Float(i, roc)
		prcs[i] = t.Float(i, prc)
	}
	row.AUCROC = aggregate.MeanOf(rocs)
	row.AUCPRC = aggregate.MeanOf(prcs)
	return nil
}
