package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// CurvePoint is one (x, y) point of a ROC or precision-recall curve
type CurvePoint struct {
	X, Y float64
}

// AUCResult holds the areas under the ROC and precision-recall curves of
// a scored gene prediction
type AUCResult struct {
	ROC       float64
	PRC       float64
	ROCPoints []CurvePoint // (false positive rate, true positive rate)
	PRCPoints []CurvePoint // (recall, precision)
}

// EvaluateAUC ranks every predicted gene base by its feature score and
// integrates the ROC curve with the trapezoid rule and the precision-recall
// curve stepwise. A base is positive when a reference gene covers it on
// the same strand.
func EvaluateAUC(refs, preds []Feature) AUCResult {
	ref := nucleotides(refs, "gene")

	type scored struct {
		score    float64
		positive bool
	}
	var ranked []scored
	for _, f := range preds {
		if f.Type != "gene" {
			continue
		}
		for p := f.Start; p <= f.End; p++ {
			_, hit := ref[nucleotide{f.SeqID, p, f.Strand == '+'}]
			ranked = append(ranked, scored{f.Score, hit})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	pos := 0
	for _, s := range ranked {
		if s.positive {
			pos++
		}
	}
	neg := len(ranked) - pos

	var (
		res                     AUCResult
		tp, fp                  float64
		prevTPR, prevFPR, prevR float64
	)
	for _, s := range ranked {
		if s.positive {
			tp++
		} else {
			fp++
		}

		var tpr, fpr float64
		if pos > 0 {
			tpr = tp / float64(pos)
		}
		if neg > 0 {
			fpr = fp / float64(neg)
		}
		precision := tp / (tp + fp)

		res.ROCPoints = append(res.ROCPoints, CurvePoint{fpr, tpr})
		res.PRCPoints = append(res.PRCPoints, CurvePoint{tpr, precision})
		res.ROC += (fpr - prevFPR) * (tpr + prevTPR) / 2
		res.PRC += (tpr - prevR) * precision

		prevFPR, prevTPR, prevR = fpr, tpr, tpr
	}
	return res
}

// WriteAUC writes <base>_auc.csv with the two areas and <base>_roc.csv and
// <base>_prc.csv with the curve points
func WriteAUC(base string, res AUCResult) error {
	summary := [][]string{
		{"AUC_ROC", "AUC_PRC"},
		{strconv.FormatFloat(res.ROC, 'f', 4, 64), strconv.FormatFloat(res.PRC, 'f', 4, 64)},
	}
	if err := writeCSV(base+"_auc.csv", summary); err != nil {
		return err
	}
	if err := writeCSV(base+"_roc.csv", curveRecords("FPR", "TPR", res.ROCPoints)); err != nil {
		return err
	}
	return writeCSV(base+"_prc.csv", curveRecords("Recall", "Precision", res.PRCPoints))
}

func curveRecords(x, y string, points []CurvePoint) [][]string {
	records := make([][]string, 0, len(points)+1)
	records = append(records, []string{x, y})
	for _, p := range points {
		records = append(records, []string{
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		})
	}
	return records
}

func writeCSV(path string, records [][]string) error {
	err := writeFile(path, func(w io.Writer) error {
		return csv.NewWriter(w).WriteAll(records)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
