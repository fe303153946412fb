package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/su1ph3r/annobench/pkg/types"
)

func TestReadCaseInsensitive(t *testing.T) {
	data := "Species,MODEL,Mutation_Rate,AUC_ROC\nmanihot_esculenta,m_esculenta_model_PCA,0,0.91\n"
	tbl, err := Read(strings.NewReader(data), "auc.csv")
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())

	col, ok := tbl.Column("tool", "model")
	require.True(t, ok)
	assert.Equal(t, "m_esculenta_model_PCA", tbl.String(0, col))

	col, ok = tbl.Column("mut_rate", "mutation_rate")
	require.True(t, ok)
	assert.Equal(t, types.Some(0), tbl.Float(0, col))

	col, err = tbl.MustColumn("auc_roc")
	require.NoError(t, err)
	assert.Equal(t, types.Some(0.91), tbl.Float(0, col))
}

func TestMustColumnMissing(t *testing.T) {
	tbl, err := Read(strings.NewReader("label,tp\n"), "run.csv")
	require.NoError(t, err)

	_, err = tbl.MustColumn("fp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingRequiredColumn))
	assert.Contains(t, err.Error(), "run.csv")
}

func TestFloatCoercion(t *testing.T) {
	tbl, err := Read(strings.NewReader("a,b,c\n1.5,,NA\n"), "x.csv")
	require.NoError(t, err)

	assert.Equal(t, types.Some(1.5), tbl.Float(0, 0))
	assert.False(t, tbl.Float(0, 1).Valid)
	assert.False(t, tbl.Float(0, 2).Valid)
	assert.False(t, tbl.Float(0, 7).Valid, "out of range column is null")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufefflabel,tp\ngene,3\n"), 0644))

	tbl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run.csv", tbl.Name)
	assert.True(t, tbl.Has("LABEL"))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""), "empty.csv")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	tbl, err := Read(strings.NewReader("label,tp\ngene,1\ngene_nucleotide,2\n"), "x.csv")
	require.NoError(t, err)

	out := tbl.Filter(func(i int) bool { return tbl.String(i, 0) == "gene_nucleotide" })
	require.Equal(t, 1, out.Len())
	assert.Equal(t, types.Some(2), out.Float(0, 1))
	assert.Equal(t, 2, tbl.Len())
}
