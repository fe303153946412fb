// Package tabular reads delimited result files into header-indexed tables
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/su1ph3r/annobench/pkg/types"
)

// Table is a parsed CSV file. Column lookup is case-insensitive.
type Table struct {
	Name    string
	Header  []string
	Records [][]string
	index   map[string]int
}

// ReadFile parses the CSV file at path
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, filepath.Base(path))
}

// Read parses CSV data from r. The first record is the header.
func Read(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}

	t := &Table{Name: name, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header = append(t.Header, h)
		key := strings.ToLower(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// Column returns the index of the first alias present in the header
func (t *Table) Column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.index[strings.ToLower(a)]; ok {
			return i, true
		}
	}
	return -1, false
}

// Has reports whether any alias is a column
func (t *Table) Has(aliases ...string) bool {
	_, ok := t.Column(aliases...)
	return ok
}

// MustColumn is Column returning a *types.MissingColumnError on a miss,
// naming the first alias.
func (t *Table) MustColumn(aliases ...string) (int, error) {
	if i, ok := t.Column(aliases...); ok {
		return i, nil
	}
	return -1, &types.MissingColumnError{Table: t.Name, Column: aliases[0]}
}

// Len returns the number of data records
func (t *Table) Len() int {
	return len(t.Records)
}

// String returns the trimmed field of record i at column col; a missing
// field or a negative column gives "".
func (t *Table) String(i, col int) string {
	if col < 0 || col >= len(t.Records[i]) {
		return ""
	}
	return strings.TrimSpace(t.Records[i][col])
}

// Float coerces the field to a number. Blank and non-numeric values are
// null.
func (t *Table) Float(i, col int) types.Score {
	return ParseScore(t.String(i, col))
}

// ParseScore parses a numeric field, returning null for blanks, NA markers
// and anything unparsable.
func ParseScore(s string) types.Score {
	if s == "" {
		return types.Null
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.Null
	}
	return types.Some(v)
}

// Filter returns a table sharing the header with only the records keep
// accepts.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := &Table{Name: t.Name, Header: t.Header, index: t.index}
	for i, rec := range t.Records {
		if keep(i) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}
