package reporter

import (
	"encoding/json"
	"io"

	"github.com/su1ph3r/annobench/pkg/types"
)

// JSONReporter generates JSON reports
type JSONReporter struct {
	options ReportOptions
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(options ReportOptions) *JSONReporter {
	return &JSONReporter{options: options}
}

// Format returns the format name
func (r *JSONReporter) Format() string {
	return "json"
}

// Extension returns the file extension
func (r *JSONReporter) Extension() string {
	return "json"
}

// Generate generates a JSON report
func (r *JSONReporter) Generate(report *types.Report) ([]byte, error) {
	return json.MarshalIndent(r.prepareOutput(report), "", "  ")
}

// Write writes the JSON report to a writer
func (r *JSONReporter) Write(report *types.Report, w io.Writer) error {
	data, err := r.Generate(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// prepareOutput prepares the output structure
func (r *JSONReporter) prepareOutput(report *types.Report) *JSONOutput {
	title := report.Title
	if r.options.Title != "" {
		title = r.options.Title
	}

	output := &JSONOutput{
		ID:          report.ID,
		Title:       title,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Tables:      make([]JSONTable, 0, len(report.Tables)),
		Diagnostics: report.Diagnostics,
	}

	for _, t := range report.Tables {
		jt := JSONTable{
			Name:    t.Name,
			Title:   t.Title,
			Columns: t.Columns,
			Rows:    make([][]interface{}, 0, len(t.Rows)),
		}
		for _, row := range t.Rows {
			values := make([]interface{}, len(row))
			for i, c := range row {
				values[i] = c.Value()
			}
			jt.Rows = append(jt.Rows, values)
		}
		output.Tables = append(output.Tables, jt)
	}
	return output
}

// JSONOutput is the JSON output structure
type JSONOutput struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	GeneratedAt string             `json:"generated_at"`
	Tables      []JSONTable        `json:"tables"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
}

// JSONTable is one table; rows are positional and nulls are JSON null
type JSONTable struct {
	Name    string          `json:"name"`
	Title   string          `json:"title"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}
