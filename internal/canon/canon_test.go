package canon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/su1ph3r/annobench/pkg/types"
)

func TestSpeciesLabel(t *testing.T) {
	c := New(nil)

	assert.Equal(t, "A. thaliana", c.SpeciesLabel("arabidopsis_thaliana"))
	assert.Equal(t, "M. esculenta", c.SpeciesLabel("manihot_esculenta"))
	assert.Equal(t, "Zea Mays", c.SpeciesLabel("zea_mays"))
}

func TestSnapBucket(t *testing.T) {
	c := New(nil)

	tests := map[string]string{
		"arabidopsis_thaliana": "A. thaliana",
		"A_thaliana":           "A. thaliana",
		" arabidopsis ":        "A. thaliana",
		"oryza_sativa":         "O. sativa",
		"rice":                 "O. sativa",
		"o_sativa":             "O. sativa",
		"zea_mays":             "zea_mays",
		"":                     UnknownTrain,
	}
	for in, want := range tests {
		assert.Equal(t, want, c.SnapBucket(in), "SnapBucket(%q)", in)
	}
}

func TestModelLabels(t *testing.T) {
	c := New(nil)

	assert.Equal(t, "M. esculenta model (PCA)", c.ModelLabel("m_esculenta_model_PCA"))
	assert.Equal(t, "custom_model", c.ModelLabel("custom_model"))

	assert.Equal(t, "GeAnno (M. esculenta, PCA)", c.GeAnnoLabel("m_esculenta_model_PCA"))
	assert.Equal(t, "GeAnno (GeneMark)", c.GeAnnoLabel("genemark_model"))
	assert.Equal(t, "GeAnno (A. thaliana, PCA)", c.GeAnnoLabel("a_thaliana_model_PCA"))
	assert.Equal(t, "GeAnno (custom_model)", c.GeAnnoLabel("custom_model"))
}

func TestClassify(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name    string
		v       types.Variant
		setting types.Setting
		label   string
	}{
		{"augustus ab initio", types.Augustus{}, types.SettingAbInitio, "AUGUSTUS (ab initio)"},
		{"augustus abinitio token", types.Augustus{Hint: types.HintAbInitio}, types.SettingAbInitio, "AUGUSTUS (ab initio)"},
		{"augustus hints", types.Augustus{Hint: types.HintGenus}, types.SettingEvidence, "AUGUSTUS (hints)"},
		{"augustus artifact hint", types.Augustus{Hint: "g3"}, types.SettingNone, "AUGUSTUS (hints)"},
		{"genemark-es", types.GeneMarkES{}, types.SettingAbInitio, "GeneMark-ES"},
		{"snap rice", types.SNAP{TrainSpecies: "oryza_sativa"}, types.SettingAbInitio, "SNAP (O. sativa)"},
		{"snap unknown", types.SNAP{}, types.SettingAbInitio, "SNAP (Unknown)"},
		{"genemark-ep", types.GeneMarkEP{Hint: types.HintFar}, types.SettingEvidence, "GeneMark-EP+"},
		{"genemark-etp", types.GeneMarkETP{Hint: types.HintOrder}, types.SettingEvidence, "GeneMark-ETP"},
		{"gemoma abinitio", types.GeMoMa{Hint: types.HintAbInitio}, types.SettingNone, "GeMoMa"},
		{"geanno", types.GeAnno{Model: "m_esculenta_model_PCA"}, types.SettingReference, "GeAnno (M. esculenta, PCA)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setting, label := c.Classify(tt.v)
			assert.Equal(t, tt.setting, setting)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestPerKb(t *testing.T) {
	c := New(nil)

	v, ok := c.PerKb(types.Some(30210), "arabidopsis_thaliana")
	require.True(t, ok)
	assert.InDelta(t, 1.0, v.Value, 1e-12)

	_, ok = c.PerKb(types.Some(10), "zea_mays")
	assert.False(t, ok)
}

func TestAnnotate(t *testing.T) {
	c := New(nil)
	rows := []types.Row{
		{Kind: types.ToolSNAP, Tool: "snap", Species: "oryza_sativa", TrainSpecies: "arabidopsis_thaliana"},
		{Kind: types.ToolGeMoMa, Tool: "gemoma", Species: "manihot_esculenta", Hint: types.HintGenus},
	}

	out := c.Annotate(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "O. sativa", out[0].SpeciesLabel)
	assert.Equal(t, "SNAP (A. thaliana)", out[0].ToolLabel)
	assert.Equal(t, types.SettingEvidence, out[1].Setting)
	assert.Empty(t, rows[0].ToolLabel, "input rows are left untouched")
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	content := `species_labels:
  zea_mays: Z. mays
genome_size_kb:
  zea_mays: 2300000
model_labels:
  z_mays_model_PCA: Z. mays model (PCA)
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	c := New(tables)
	assert.Equal(t, "Z. mays", c.SpeciesLabel("zea_mays"))
	assert.Equal(t, "A. thaliana", c.SpeciesLabel("arabidopsis_thaliana"))
	size, ok := c.GenomeSizeKb("zea_mays")
	require.True(t, ok)
	assert.Equal(t, 2300000.0, size)
	assert.Equal(t, "GeAnno (Z. mays, PCA)", c.GeAnnoLabel("z_mays_model_PCA"))
}

func TestLoadTablesErrors(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("species_labels: [a, b"), 0644))
	_, err = LoadTables(path)
	assert.Error(t, err)
}

func TestDefaultTablesAreIndependent(t *testing.T) {
	a := DefaultTables()
	a.SpeciesLabels["arabidopsis_thaliana"] = "changed"

	assert.Equal(t, "A. thaliana", DefaultTables().SpeciesLabels["arabidopsis_thaliana"])
}
