package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/su1ph3r/annobench/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func testConfig(t *testing.T) *types.Config {
	t.Helper()
	root := t.TempDir()
	cfg := types.DefaultConfig()
	cfg.Input.BenchDir = filepath.Join(root, "results")
	cfg.Input.GeAnnoDir = filepath.Join(root, "geanno")

	writeFile(t, cfg.Input.BenchDir, "augustus_arabidopsis_thaliana_original_abinitio_120.5_512.csv",
		"label,tp,fp,fn\ngene_nucleotide,80,20,0\n")
	writeFile(t, cfg.Input.BenchDir, "augustus_arabidopsis_thaliana_0.07_abinitio_130_520.csv",
		"label,tp,fp,fn\ngene_nucleotide,60,40,20\n")
	writeFile(t, cfg.Input.BenchDir, "augustus_arabidopsis_thaliana_original_abinitio_120.5_512_auc.csv",
		"AUC_ROC,AUC_PRC\n0.9,0.7\n")
	writeFile(t, cfg.Input.GeAnnoDir, "geanno.csv",
		"species,model,time,mem,mutation_rate,window,step,threshold,tp,fp,fn\n"+
			"arabidopsis_thaliana,m_esculenta_model_PCA,30,2048,0,1500,50,0.8,70,30,10\n")
	return cfg
}

func TestBuild(t *testing.T) {
	cfg := testConfig(t)

	report, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Output.Title, report.Title)
	assert.NotEmpty(t, report.ID)

	names := make(map[string]bool)
	for _, tbl := range report.Tables {
		names[tbl.Name] = true
	}
	for _, want := range []string{
		"tool_mutation_drop_0_vs_7pct_fallback4pct",
		"all_tools_table",
		"geanno_models_table",
		"resources_by_species",
		"auc_summary",
	} {
		assert.True(t, names[want], "missing table %s", want)
	}
}

func TestBuildSelectedAnalyses(t *testing.T) {
	report, err := Build(testConfig(t), "mutation_drop")
	require.NoError(t, err)
	require.Len(t, report.Tables, 1)

	drop := report.Tables[0]
	c, ok := drop.Get(0, "precision_diff")
	require.True(t, ok)
	assert.InDelta(t, 20, c.Num.Value, 1e-9)
}

func TestBuildMissingBenchDir(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Input.BenchDir = filepath.Join(t.TempDir(), "missing")
	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestLoadWithoutGeAnno(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.GeAnnoDir = filepath.Join(t.TempDir(), "none")

	c, err := Canonicalizer(cfg)
	require.NoError(t, err)
	in, _, err := Load(cfg, c)
	require.NoError(t, err)
	assert.Len(t, in.Bench, 2)
	assert.Empty(t, in.GeAnno)
	assert.Len(t, in.BenchAUC, 1)
}

func TestCanonicalizerTablesFile(t *testing.T) {
	cfg := types.DefaultConfig()
	dir := t.TempDir()
	writeFile(t, dir, "tables.yaml", "species_labels:\n  zea_mays: Z. mays\n")
	cfg.Input.TablesFile = filepath.Join(dir, "tables.yaml")

	c, err := Canonicalizer(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Z. mays", c.SpeciesLabel("zea_mays"))
	assert.Equal(t, "A. thaliana", c.SpeciesLabel("arabidopsis_thaliana"))
}

func TestAnalysisNames(t *testing.T) {
	names := AnalysisNames()
	assert.Contains(t, names, "mutation_drop")
	assert.Contains(t, names, "auc_summary")
}
