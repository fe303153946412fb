package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// MetricsHeader is the header of a per-run metric file
var MetricsHeader = []string{"label", "tp", "fp", "fn", "sensitivity", "specificity"}

// WriteMetricsCSV writes rows in the per-run metric file layout.
// Percentages carry two decimals.
func WriteMetricsCSV(w io.Writer, rows []LabelMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MetricsHeader); err != nil {
		return err
	}
	for _, m := range rows {
		rec := []string{
			m.Label,
			strconv.Itoa(m.TP),
			strconv.Itoa(m.FP),
			strconv.Itoa(m.FN),
			strconv.FormatFloat(m.Sensitivity, 'f', 2, 64),
			strconv.FormatFloat(m.Specificity, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMetricsFile writes a metric file to path
func WriteMetricsFile(path string, rows []LabelMetrics) error {
	err := writeFile(path, func(w io.Writer) error {
		return WriteMetricsCSV(w, rows)
	})
	if err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}

// createFile opens an output file; replaced in tests
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile creates path and runs write on it. The close error is returned
// when write succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
