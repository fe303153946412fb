package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/su1ph3r/annobench/pkg/types"
)

func TestDecodeAugustusAbInitio(t *testing.T) {
	meta, err := Decode("augustus_arabidopsis_thaliana_original_abinitio_120.5_512.csv")
	require.NoError(t, err)

	assert.Equal(t, types.ToolAugustus, meta.Tool())
	assert.Equal(t, "arabidopsis_thaliana", meta.Species)
	assert.Equal(t, 0.0, meta.MutRate)
	assert.Equal(t, 120.5, meta.TimeSec)
	assert.Equal(t, 512.0, meta.RAMMB)

	_, hasHint := types.HintOf(meta.Variant)
	assert.False(t, hasHint, "ab initio run must not carry a hint")
}

func TestDecodeSNAP(t *testing.T) {
	meta, err := Decode("snap_oryza_sativa_0.04_arabidopsis_thaliana_88.2_300.csv")
	require.NoError(t, err)

	assert.Equal(t, types.ToolSNAP, meta.Tool())
	assert.Equal(t, "oryza_sativa", meta.Species)
	assert.Equal(t, 0.04, meta.MutRate)
	assert.Equal(t, types.SNAP{TrainSpecies: "arabidopsis_thaliana"}, meta.Variant.(types.SNAP))
	assert.Equal(t, 88.2, meta.TimeSec)
	assert.Equal(t, 300.0, meta.RAMMB)
}

func TestDecodeHintedTools(t *testing.T) {
	tests := []struct {
		name    string
		variant types.Variant
	}{
		{"augustus_manihot_esculenta_0.07_genus_40_900.csv", types.Augustus{Hint: types.HintGenus}},
		{"gemoma_oryza_sativa_0.01_order_12.25_2048.csv", types.GeMoMa{Hint: types.HintOrder}},
		{"genemarkep_gossypium_raimondii_original_far_300_100.csv", types.GeneMarkEP{Hint: types.HintFar}},
		{"genemarketp_arabidopsis_thaliana_0.04_genus_1_2.csv", types.GeneMarkETP{Hint: types.HintGenus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := Decode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, meta.Variant)
		})
	}
}

func TestDecodeGeneMarkES(t *testing.T) {
	meta, err := Decode("genemarkes_oryza_sativa_0.01_55.5_1024.csv")
	require.NoError(t, err)

	assert.Equal(t, types.GeneMarkES{}, meta.Variant)
	assert.Equal(t, 0.01, meta.MutRate)
	assert.Equal(t, 55.5, meta.TimeSec)
	assert.Equal(t, 1024.0, meta.RAMMB)
}

func TestDecodeStripsDirectory(t *testing.T) {
	meta, err := Decode("/data/results/genemarkes_oryza_sativa_original_5_10.csv")
	require.NoError(t, err)
	assert.Equal(t, "oryza_sativa", meta.Species)
}

func TestDecodeUppercaseExtension(t *testing.T) {
	name := "augustus_arabidopsis_thaliana_original_abinitio_120.5_512.CSV"
	require.True(t, IsResultFile(name))

	meta, err := Decode(name)
	require.NoError(t, err)
	assert.Equal(t, 512.0, meta.RAMMB)
	assert.Equal(t, 120.5, meta.TimeSec)
}

func TestDecodeIsPure(t *testing.T) {
	names := []string{
		"augustus_arabidopsis_thaliana_original_abinitio_120.5_512.csv",
		"snap_oryza_sativa_0.04_arabidopsis_thaliana_88.2_300.csv",
		"gemoma_manihot_esculenta_0.07_far_1_1.csv",
	}
	for _, name := range names {
		first, err := Decode(name)
		require.NoError(t, err)
		second, err := Decode(name)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestDecodeRejects(t *testing.T) {
	bad := []string{
		"augustus_arabidopsis_thaliana_original_abinitio.csv",
		"braker_arabidopsis_thaliana_original_genus_1_2.csv",
		"Augustus_arabidopsis_thaliana_original_genus_1_2.csv",
		"augustus_arabidopsis_thaliana_original_genus_1.csv",
		"augustus_arabidopsis_thaliana_high_genus_1_2.csv",
		"snap_oryza_sativa_0.04_rice_fast_300.csv",
		"gemoma_oryza_sativa_-0.1_far_1_2.csv",
		"notes.csv",
	}

	for _, name := range bad {
		t.Run(name, func(t *testing.T) {
			meta, err := Decode(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrUnrecognizedFilename))

			var uerr *types.UnrecognizedFilenameError
			require.True(t, errors.As(err, &uerr))
			assert.NotEmpty(t, uerr.Reason)
			assert.Equal(t, types.RunMeta{}, meta)
		})
	}
}
