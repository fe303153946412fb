package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/su1ph3r/annobench/pkg/types"
)

// MarkdownReporter generates Markdown reports
type MarkdownReporter struct {
	options ReportOptions
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(options ReportOptions) *MarkdownReporter {
	return &MarkdownReporter{options: options}
}

// Format returns the format name
func (r *MarkdownReporter) Format() string {
	return "markdown"
}

// Extension returns the file extension
func (r *MarkdownReporter) Extension() string {
	return "md"
}

// Generate generates a Markdown report
func (r *MarkdownReporter) Generate(report *types.Report) ([]byte, error) {
	return generate(r, report)
}

// Write writes the Markdown report to a writer
func (r *MarkdownReporter) Write(report *types.Report, w io.Writer) error {
	title := report.Title
	if r.options.Title != "" {
		title = r.options.Title
	}

	// Title
	fmt.Fprintf(w, "# %s\n\n", title)

	// Summary
	fmt.Fprintf(w, "| Property | Value |\n")
	fmt.Fprintf(w, "|----------|-------|\n")
	fmt.Fprintf(w, "| Report ID | `%s` |\n", report.ID)
	fmt.Fprintf(w, "| Generated | %s |\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "| Tables | %d |\n", len(report.Tables))
	fmt.Fprintf(w, "| Diagnostics | %d |\n", len(report.Diagnostics))
	fmt.Fprintf(w, "\n")

	if len(report.Tables) == 0 {
		fmt.Fprintf(w, "_No tables produced._\n\n")
	}

	for _, t := range report.Tables {
		fmt.Fprintf(w, "## %s\n\n", t.Title)
		fmt.Fprintf(w, "`%s`\n\n", t.Name)
		r.writeTable(w, t)
	}

	if r.options.Verbose && len(report.Diagnostics) > 0 {
		fmt.Fprintf(w, "## Diagnostics\n\n")
		fmt.Fprintf(w, "| Kind | Subject | Message |\n")
		fmt.Fprintf(w, "|------|---------|---------|\n")
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "| %s | `%s` | %s |\n", d.Kind, EscapeMarkdownCell(d.Subject), EscapeMarkdownCell(d.Message))
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

func (r *MarkdownReporter) writeTable(w io.Writer, t *types.Table) {
	header := make([]string, len(t.Columns))
	sep := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = EscapeMarkdownCell(c)
		sep[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))

	for _, row := range t.Rows {
		cells := formatRow(row, r.options.Decimals)
		for i := range cells {
			cells[i] = EscapeMarkdownCell(cells[i])
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintf(w, "\n")
}
