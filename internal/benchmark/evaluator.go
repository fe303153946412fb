package benchmark

import (
	"strconv"
	"strings"
)

// NucleotideSuffix marks labels scored per nucleotide rather than per
// exact interval
const NucleotideSuffix = "_nucleotide"

// DefaultLabels are the rows of a metric file in output order
var DefaultLabels = []string{"gene", "mRNA", "CDS", "exon", "CDS_nucleotide", "gene_nucleotide"}

// LabelMetrics is one row of a metric file. Sensitivity and specificity
// are percentages; both are 0 when their denominator is.
type LabelMetrics struct {
	Label       string
	TP          int
	FP          int
	FN          int
	Sensitivity float64
	Specificity float64
}

func newLabelMetrics(label string, tp, fp, fn int) LabelMetrics {
	m := LabelMetrics{Label: label, TP: tp, FP: fp, FN: fn}
	if tp+fn > 0 {
		m.Sensitivity = 100 * float64(tp) / float64(tp+fn)
	}
	if tp+fp > 0 {
		m.Specificity = 100 * float64(tp) / float64(tp+fp)
	}
	return m
}

// Evaluate scores preds against refs for each label. Interval labels
// count exact (sequence, start, end, strand) matches and are left out when
// neither side has a feature of that type. Labels ending in
// "_nucleotide" count strand-aware bases covered by the base feature type
// and are always reported.
func Evaluate(refs, preds []Feature, labels []string) []LabelMetrics {
	out := make([]LabelMetrics, 0, len(labels))
	for _, label := range labels {
		if base, ok := strings.CutSuffix(label, NucleotideSuffix); ok {
			tp, fp, fn := nucleotideCounts(refs, preds, base)
			out = append(out, newLabelMetrics(label, tp, fp, fn))
			continue
		}

		ref := intervals(refs, label)
		pred := intervals(preds, label)
		if len(ref) == 0 && len(pred) == 0 {
			continue
		}
		tp := 0
		for k := range pred {
			if _, ok := ref[k]; ok {
				tp++
			}
		}
		out = append(out, newLabelMetrics(label, tp, len(pred)-tp, len(ref)-tp))
	}
	return out
}

func intervals(feats []Feature, typ string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range feats {
		if f.Type != typ {
			continue
		}
		set[f.SeqID+":"+strconv.Itoa(f.Start)+"-"+strconv.Itoa(f.End)+":"+string(f.Strand)] = struct{}{}
	}
	return set
}

// nucleotide is one strand-aware base. Minus and unknown strands share a
// key.
type nucleotide struct {
	seq  string
	pos  int
	plus bool
}

func nucleotides(feats []Feature, typ string) map[nucleotide]struct{} {
	set := make(map[nucleotide]struct{})
	for _, f := range feats {
		if f.Type != typ {
			continue
		}
		for p := f.Start; p <= f.End; p++ {
			set[nucleotide{f.SeqID, p, f.Strand == '+'}] = struct{}{}
		}
	}
	return set
}

func nucleotideCounts(refs, preds []Feature, typ string) (tp, fp, fn int) {
	ref := nucleotides(refs, typ)
	pred := nucleotides(preds, typ)
	for n := range pred {
		if _, ok := ref[n]; ok {
			tp++
		}
	}
	return tp, len(pred) - tp, len(ref) - tp
}
