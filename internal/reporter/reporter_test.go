package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/su1ph3r/annobench/pkg/types"
)

func testReport() *types.Report {
	report := types.NewReport("Benchmark")

	t := types.NewTable("tool_overview_by_mutrate", "Tool overview", "tool_label", "mut_rate", "f1")
	t.Append(types.TextCell("AUGUSTUS"), types.FloatCell(0), types.FloatCell(0.123456))
	t.Append(types.TextCell("SNAP | rice"), types.FloatCell(0.04), types.NumCell(types.Null))
	report.AddTable(t)

	u := types.NewTable("auc_summary", "AUC summary", "species", "auc_roc")
	u.Append(types.TextCell("oryza_sativa"), types.FloatCell(0.9))
	report.AddTable(u)

	report.Warn(types.DiagEmptyResult, "mutation_drop", "no rows")
	return report
}

func TestNewReporter(t *testing.T) {
	for _, format := range []string{"csv", "json", "markdown", "md", "text", "txt", "JSON"} {
		if _, err := NewReporter(format, DefaultOptions()); err != nil {
			t.Errorf("NewReporter(%q) error: %v", format, err)
		}
	}
	if _, err := NewReporter("html", DefaultOptions()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCSVWriteTables(t *testing.T) {
	dir := t.TempDir()
	r := NewCSVReporter(DefaultOptions())

	paths, err := r.WriteTables(testReport(), dir)
	if err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d files, want 2", len(paths))
	}

	f, err := os.Open(filepath.Join(dir, "tool_overview_by_mutrate.csv"))
	if err != nil {
		t.Fatalf("failed to open table: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if got := strings.Join(records[0], ","); got != "tool_label,mut_rate,f1" {
		t.Errorf("header = %q", got)
	}
	if records[1][2] != "0.123456" {
		t.Errorf("full precision lost: %q", records[1][2])
	}
	if records[2][0] != "SNAP | rice" || records[2][2] != "" {
		t.Errorf("null row = %v", records[2])
	}
}

func TestCSVWriteStream(t *testing.T) {
	data, err := NewCSVReporter(DefaultOptions()).Generate(testReport())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "# tool_overview_by_mutrate\n") {
		t.Errorf("missing table marker: %q", out)
	}
	if !strings.Contains(out, "\n\n# auc_summary\n") {
		t.Errorf("missing second table: %q", out)
	}
}

func TestJSONReporter(t *testing.T) {
	report := testReport()
	data, err := NewJSONReporter(ReportOptions{}).Generate(report)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to parse output JSON: %v", err)
	}
	if out.ID != report.ID {
		t.Errorf("ID = %q, want %q", out.ID, report.ID)
	}
	if out.Title != "Benchmark" {
		t.Errorf("Title = %q", out.Title)
	}
	if len(out.Tables) != 2 {
		t.Fatalf("got %d tables", len(out.Tables))
	}
	row := out.Tables[0].Rows[1]
	if row[2] != nil {
		t.Errorf("null cell encoded as %v", row[2])
	}
	if v, ok := out.Tables[0].Rows[0][2].(float64); !ok || v != 0.123456 {
		t.Errorf("numeric cell = %v", out.Tables[0].Rows[0][2])
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Subject != "mutation_drop" {
		t.Errorf("diagnostics = %v", out.Diagnostics)
	}
}

func TestMarkdownReporter(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Custom"
	opts.Verbose = true

	data, err := NewMarkdownReporter(opts).Generate(testReport())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# Custom\n",
		"## Tool overview\n",
		"| tool_label | mut_rate | f1 |\n",
		"| AUGUSTUS | 0.00 | 0.12 |\n",
		"| SNAP \\| rice | 0.04 |  |\n",
		"## Diagnostics\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTextReporterAlignsColumns(t *testing.T) {
	opts := DefaultOptions()
	opts.NoColor = true

	data, err := NewTextReporter(opts).Generate(testReport())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "\033[") {
		t.Error("color codes in no-color output")
	}
	if !strings.Contains(out, "tool_label   mut_rate  f1\n") {
		t.Errorf("header not aligned:\n%s", out)
	}
	if !strings.Contains(out, "AUGUSTUS         0.00  0.12\n") {
		t.Errorf("row not aligned:\n%s", out)
	}
	if strings.Contains(out, "mutation_drop") {
		t.Error("diagnostics printed without verbose")
	}
}

func TestMultiReporterWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	mr, err := NewMultiReporter([]string{"csv", "json", "md"}, DefaultOptions())
	if err != nil {
		t.Fatalf("NewMultiReporter failed: %v", err)
	}

	paths, err := mr.WriteAll(testReport(), dir)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("wrote %v, want 4 files", paths)
	}
	for _, name := range []string{"tool_overview_by_mutrate.csv", "auc_summary.csv", "report.json", "report.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("a long diagnostic message", 10); got != "a long ..." {
		t.Errorf("got %q", got)
	}
}

var errDiskFull = errors.New("no space left on device")

type badCloseFile struct {
	bytes.Buffer
}

func (f *badCloseFile) Close() error { return errDiskFull }

func TestWriteReportsCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })
	createFile = func(string) (io.WriteCloser, error) { return &badCloseFile{}, nil }

	dir := t.TempDir()
	if _, err := NewCSVReporter(DefaultOptions()).WriteTables(testReport(), dir); !errors.Is(err, errDiskFull) {
		t.Errorf("WriteTables error = %v, want close error", err)
	}
	if err := WriteToFile(NewJSONReporter(DefaultOptions()), testReport(), filepath.Join(dir, "report.json")); !errors.Is(err, errDiskFull) {
		t.Errorf("WriteToFile error = %v, want close error", err)
	}
}
