package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/su1ph3r/annobench/pkg/types"
)

// CSVReporter writes tidy tables as CSV. Numbers keep full precision and
// nulls are empty fields.
type CSVReporter struct {
	options ReportOptions
}

// NewCSVReporter creates a new CSV reporter
func NewCSVReporter(options ReportOptions) *CSVReporter {
	return &CSVReporter{options: options}
}

// Format returns the format name
func (r *CSVReporter) Format() string {
	return "csv"
}

// Extension returns the file extension
func (r *CSVReporter) Extension() string {
	return "csv"
}

// Generate generates all tables as one CSV stream
func (r *CSVReporter) Generate(report *types.Report) ([]byte, error) {
	return generate(r, report)
}

// Write writes every table, each preceded by a "# <name>" line and
// separated by a blank line
func (r *CSVReporter) Write(report *types.Report, w io.Writer) error {
	for i, t := range report.Tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %s\n", t.Name); err != nil {
			return err
		}
		if err := WriteTableCSV(t, w); err != nil {
			return err
		}
	}
	return nil
}

// WriteTables writes each table to <dir>/<name>.csv
func (r *CSVReporter) WriteTables(report *types.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	paths := make([]string, 0, len(report.Tables))
	for _, t := range report.Tables {
		path := filepath.Join(dir, t.Name+".csv")
		if err := writeTableFile(t, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTableFile(t *types.Table, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteTableCSV(t, w)
	})
}

// WriteTableCSV writes one table with a header row
func WriteTableCSV(t *types.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(formatRow(row, -1)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
