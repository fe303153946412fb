package analysis

import (
	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

// Bucket is a training species shared by SNAP, the AUGUSTUS species
// model and a pair of GeAnno models
type Bucket string

// Training buckets
const (
	BucketThaliana Bucket = "A. thaliana"
	BucketSativa   Bucket = "O. sativa"
)

func (b Bucket) slug() string {
	if b == BucketSativa {
		return "sativa"
	}
	return "thaliana"
}

// bucketModels are the GeAnno models trained on each bucket
var bucketModels = map[Bucket][]string{
	BucketThaliana: {"a_thaliana_model", "a_thaliana_model_PCA"},
	BucketSativa:   {"o_sativa_model", "o_sativa_model_PCA"},
}

var geneMarkModels = []string{"genemark_model", "genemark_model_PCA"}

// augustusBucket is the species model AUGUSTUS ab initio uses on a genome
func augustusBucket(species string) Bucket {
	if species == "oryza_sativa" {
		return BucketSativa
	}
	return BucketThaliana
}

var comparisonDims = []aggregate.Dim{aggregate.Species, aggregate.SpeciesLabel, aggregate.Tool}

// AbInitioVsGeAnno compares, on unmutated genomes, the ab initio tools
// trained on bucket with the GeAnno models trained on the same species.
// AUGUSTUS counts for a genome only when its species model falls into the
// bucket.
func (a *Analyzer) AbInitioVsGeAnno(in Inputs, bucket Bucket) (*types.Table, error) {
	mut0 := aggregate.Filter(abInitio(in.Bench), atMutRate(0))

	augLabel := a.canon.ToolLabel(types.ToolAugustus) + " (ab initio, " + string(bucket) + " model)"
	aug := relabel(aggregate.Filter(mut0, func(r types.Row) bool {
		return r.Kind == types.ToolAugustus && augustusBucket(r.Species) == bucket
	}), func(types.Row) string { return augLabel })

	snap := aggregate.Filter(mut0, func(r types.Row) bool {
		return r.Kind == types.ToolSNAP && a.canon.SnapBucket(r.TrainSpecies) == string(bucket)
	})

	rows := concatRows(aug, snap, a.geAnnoSlice(in.GeAnno, bucketModels[bucket]))
	if err := aggregate.Require(rows, string(bucket)+"-trained runs on unmutated genomes"); err != nil {
		return nil, err
	}

	groups, err := aggregate.Mean(rows, comparisonDims, aggregate.Metrics)
	if err != nil {
		return nil, err
	}
	return aggregate.ToTable("abinitio_vs_geanno_"+bucket.slug(), string(bucket)+"-trained models comparison", comparisonDims, aggregate.Metrics, groups, true), nil
}

// GeAnnoVsGeneMark compares the GeneMark-trained GeAnno models with
// GeneMark-ES on unmutated genomes.
func (a *Analyzer) GeAnnoVsGeneMark(in Inputs) (*types.Table, error) {
	gmes := aggregate.Filter(in.Bench, func(r types.Row) bool {
		return r.Kind == types.ToolGeneMarkES && atMutRate(0)(r)
	})
	rows := concatRows(gmes, a.geAnnoSlice(in.GeAnno, geneMarkModels))
	if err := aggregate.Require(rows, "GeneMark-ES and GeneMark-trained GeAnno runs"); err != nil {
		return nil, err
	}

	groups, err := aggregate.Mean(rows, comparisonDims, aggregate.Metrics)
	if err != nil {
		return nil, err
	}
	return aggregate.ToTable("geanno_vs_genemark", "GeAnno (GeneMark variants) vs GeneMark-ES",
		comparisonDims, aggregate.Metrics, groups, true), nil
}

// geAnnoSlice returns the unmutated GeAnno rows of models at the operating
// point, each labelled as a tool
func (a *Analyzer) geAnnoSlice(rows []types.Row, models []string) []types.Row {
	want := make(map[string]bool, len(models))
	for _, m := range models {
		want[m] = true
	}
	sel := aggregate.Filter(a.atFixedPoint(rows), func(r types.Row) bool {
		return want[r.Tool] && atMutRate(0)(r)
	})
	return relabel(sel, func(r types.Row) string { return a.canon.GeAnnoLabel(r.Tool) })
}

func concatRows(sets ...[]types.Row) []types.Row {
	var out []types.Row
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
