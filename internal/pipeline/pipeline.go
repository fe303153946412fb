// Package pipeline wires configuration, loaders, analyses and reporters
// into one report build.
package pipeline

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/su1ph3r/annobench/internal/analysis"
	"github.com/su1ph3r/annobench/internal/canon"
	"github.com/su1ph3r/annobench/internal/loader"
	"github.com/su1ph3r/annobench/internal/normalizer"
	"github.com/su1ph3r/annobench/pkg/types"
)

// Canonicalizer builds the canonicalizer of cfg, applying the tables file
// when one is configured
func Canonicalizer(cfg *types.Config) (*canon.Canonicalizer, error) {
	if cfg.Input.TablesFile == "" {
		return canon.New(nil), nil
	}
	t, err := canon.LoadTables(cfg.Input.TablesFile)
	if err != nil {
		return nil, err
	}
	return canon.New(t), nil
}

// LoaderOptions maps cfg onto loader options
func LoaderOptions(cfg *types.Config) loader.Options {
	return loader.Options{
		SkipInvalid: cfg.Input.SkipInvalid,
		Normalize: normalizer.Options{
			NullPolicy:      cfg.Normalize.NullPolicy,
			DropEmptyCounts: cfg.Normalize.DropEmptyCounts,
		},
	}
}

// Load reads every configured input. The benchmark directory is required;
// the GeAnno directory and the AUC inputs are read when they exist.
func Load(cfg *types.Config, c *canon.Canonicalizer) (analysis.Inputs, []types.Diagnostic, error) {
	var (
		in    analysis.Inputs
		diags []types.Diagnostic
	)
	l := loader.New(c, LoaderOptions(cfg))

	bench, err := l.LoadBenchmarkDir(cfg.Input.BenchDir)
	if err != nil {
		return in, nil, fmt.Errorf("benchmark results: %w", err)
	}
	in.Bench = bench.Rows
	diags = append(diags, bench.Diagnostics...)
	log.Info().Str("dir", cfg.Input.BenchDir).Int("files", bench.Files).Int("rows", len(bench.Rows)).Msg("benchmark results loaded")

	if exists(cfg.Input.GeAnnoDir) {
		ge, err := l.LoadGeAnnoDir(cfg.Input.GeAnnoDir)
		if err != nil {
			return in, nil, fmt.Errorf("GeAnno results: %w", err)
		}
		in.GeAnno = ge.Rows
		diags = append(diags, ge.Diagnostics...)
		log.Info().Str("dir", cfg.Input.GeAnnoDir).Int("files", ge.Files).Int("rows", len(ge.Rows)).Msg("GeAnno results loaded")
	} else if cfg.Input.GeAnnoDir != "" {
		log.Warn().Str("dir", cfg.Input.GeAnnoDir).Msg("GeAnno directory not found")
	}

	if exists(cfg.Input.GeAnnoAUCFile) {
		if in.GeAnnoAUC, err = l.LoadGeAnnoAUC(cfg.Input.GeAnnoAUCFile); err != nil {
			return in, nil, fmt.Errorf("GeAnno AUC: %w", err)
		}
	}

	aucDir := cfg.Input.BenchAUCDir
	if aucDir == "" {
		aucDir = cfg.Input.BenchDir
	}
	rows, aucDiags, err := l.LoadBenchAUCDir(aucDir)
	if err != nil {
		return in, nil, fmt.Errorf("benchmark AUC: %w", err)
	}
	in.BenchAUC = rows
	diags = append(diags, aucDiags...)

	return in, diags, nil
}

// Build loads the inputs of cfg and runs the named analyses (all when none
// are named) into a new report
func Build(cfg *types.Config, names ...string) (*types.Report, error) {
	c, err := Canonicalizer(cfg)
	if err != nil {
		return nil, err
	}

	in, diags, err := Load(cfg, c)
	if err != nil {
		return nil, err
	}

	report := types.NewReport(cfg.Output.Title)
	report.Diagnostics = append(report.Diagnostics, diags...)

	a := analysis.New(c, cfg.GeAnno, cfg.Output.Decimals)
	if err := a.Build(in, report, names...); err != nil {
		return nil, err
	}
	return report, nil
}

// AnalysisNames lists the analyses a report can be built from
func AnalysisNames() []string {
	var names []string
	for _, an := range analysis.New(nil, types.GeAnnoSettings{}, 0).Analyses() {
		names = append(names, an.Name)
	}
	return names
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
