package reporter

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/su1ph3r/annobench/pkg/types"
)

// TextReporter generates aligned plain text tables for the terminal
type TextReporter struct {
	options ReportOptions
	title   *color.Color
	header  *color.Color
	warn    *color.Color
}

// NewTextReporter creates a new text reporter
func NewTextReporter(options ReportOptions) *TextReporter {
	r := &TextReporter{
		options: options,
		title:   color.New(color.FgCyan, color.Bold),
		header:  color.New(color.Bold),
		warn:    color.New(color.FgYellow),
	}
	if options.NoColor {
		r.title.DisableColor()
		r.header.DisableColor()
		r.warn.DisableColor()
	}
	return r
}

// Format returns the format name
func (r *TextReporter) Format() string {
	return "text"
}

// Extension returns the file extension
func (r *TextReporter) Extension() string {
	return "txt"
}

// Generate generates a text report
func (r *TextReporter) Generate(report *types.Report) ([]byte, error) {
	return generate(r, report)
}

// Write writes the text report to a writer
func (r *TextReporter) Write(report *types.Report, w io.Writer) error {
	title := report.Title
	if r.options.Title != "" {
		title = r.options.Title
	}

	fmt.Fprintf(w, "%s\n", r.title.Sprint(title))
	fmt.Fprintf(w, "Report %s generated at %s\n\n", report.ID, report.GeneratedAt.Format("2006-01-02 15:04 MST"))

	for _, t := range report.Tables {
		r.writeTable(w, t)
	}

	if r.options.Verbose {
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "%s %s: %s\n", r.warn.Sprintf("[%s]", d.Kind), d.Subject, d.Message)
		}
	}

	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 70))
	fmt.Fprintf(w, "%d tables, %d diagnostics\n", len(report.Tables), len(report.Diagnostics))
	return nil
}

func (r *TextReporter) writeTable(w io.Writer, t *types.Table) {
	rows := make([][]string, len(t.Rows))
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for i, row := range t.Rows {
		rows[i] = formatRow(row, r.options.Decimals)
		for j, s := range rows[i] {
			if n := utf8.RuneCountInString(s); n > widths[j] {
				widths[j] = n
			}
		}
	}

	fmt.Fprintf(w, "%s (%s)\n", t.Title, t.Name)
	fmt.Fprintf(w, "%s\n", r.header.Sprint(pad(t.Columns, widths, nil)))
	for i, row := range rows {
		fmt.Fprintf(w, "%s\n", pad(row, widths, t.Rows[i]))
	}
	fmt.Fprintf(w, "\n")
}

// pad joins cells into fixed-width columns; numeric cells are right-aligned
func pad(cells []string, widths []int, source []types.Cell) string {
	parts := make([]string, len(cells))
	for i, s := range cells {
		gap := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(s))
		if source != nil && source[i].Numeric {
			parts[i] = gap + s
		} else {
			parts[i] = s + gap
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
