// Package reporter provides output formatting for benchmark reports
package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/su1ph3r/annobench/pkg/types"
)

// Reporter interface for generating reports
type Reporter interface {
	// Generate generates a report document
	Generate(report *types.Report) ([]byte, error)

	// Write writes the report to a writer
	Write(report *types.Report, w io.Writer) error

	// Format returns the report format name
	Format() string

	// Extension returns the file extension for this format
	Extension() string
}

// TableWriter is implemented by reporters that write one file per table
type TableWriter interface {
	WriteTables(report *types.Report, dir string) ([]string, error)
}

// NewReporter creates a reporter based on format
func NewReporter(format string, options ReportOptions) (Reporter, error) {
	switch strings.ToLower(format) {
	case "csv":
		return NewCSVReporter(options), nil
	case "json":
		return NewJSONReporter(options), nil
	case "markdown", "md":
		return NewMarkdownReporter(options), nil
	case "text", "txt":
		return NewTextReporter(options), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// ReportOptions contains options for report generation
type ReportOptions struct {
	Title    string // Custom report title
	Decimals int    // Digits after the point for rendered numbers; JSON keeps full precision
	Verbose  bool   // Include diagnostics in human-readable formats
	NoColor  bool   // Plain text output
}

// DefaultOptions returns default report options
func DefaultOptions() ReportOptions {
	return ReportOptions{
		Title:    "Gene annotation benchmark",
		Decimals: 2,
	}
}

// WriteToFile writes a report to a file
func WriteToFile(reporter Reporter, report *types.Report, filename string) error {
	// Ensure directory exists
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return writeFile(filename, func(w io.Writer) error {
		return reporter.Write(report, w)
	})
}

// createFile opens an output file; replaced in tests
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile creates path and runs write on it. The close error is returned
// when write succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := createFile(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(file)
}

// MultiReporter generates reports in multiple formats
type MultiReporter struct {
	reporters []Reporter
}

// NewMultiReporter creates a multi-format reporter
func NewMultiReporter(formats []string, options ReportOptions) (*MultiReporter, error) {
	mr := &MultiReporter{
		reporters: make([]Reporter, 0, len(formats)),
	}

	for _, format := range formats {
		r, err := NewReporter(format, options)
		if err != nil {
			return nil, err
		}
		mr.reporters = append(mr.reporters, r)
	}

	return mr, nil
}

// WriteAll writes the report into dir in all configured formats and
// returns the paths written. Single-document formats are named
// "report.<ext>".
func (mr *MultiReporter) WriteAll(report *types.Report, dir string) ([]string, error) {
	var written []string
	for _, r := range mr.reporters {
		if tw, ok := r.(TableWriter); ok {
			paths, err := tw.WriteTables(report, dir)
			if err != nil {
				return written, fmt.Errorf("failed to write %s report: %w", r.Format(), err)
			}
			written = append(written, paths...)
			continue
		}

		filename := filepath.Join(dir, "report."+r.Extension())
		if err := WriteToFile(r, report, filename); err != nil {
			return written, fmt.Errorf("failed to write %s report: %w", r.Format(), err)
		}
		written = append(written, filename)
	}
	return written, nil
}

// generate renders a streaming reporter into memory
func generate(r Reporter, report *types.Report) ([]byte, error) {
	var buf strings.Builder
	if err := r.Write(report, &buf); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// formatRow renders the cells of one table row
func formatRow(row []types.Cell, decimals int) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Format(decimals)
	}
	return out
}

// TruncateString truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// EscapeMarkdownCell escapes characters that break a Markdown table cell
func EscapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
