package types

import "strconv"

// Cell is one value of a tidy table
type Cell struct {
	Text    string
	Num     Score
	Numeric bool
}

// TextCell builds a string cell
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// NumCell builds a numeric cell which may be null
func NumCell(s Score) Cell {
	return Cell{Num: s, Numeric: true}
}

// FloatCell builds a non-null numeric cell
func FloatCell(f float64) Cell {
	return NumCell(Some(f))
}

// Format renders the cell; decimals < 0 keeps full precision
func (c Cell) Format(decimals int) string {
	if !c.Numeric {
		return c.Text
	}
	if !c.Num.Valid {
		return ""
	}
	if decimals < 0 {
		return strconv.FormatFloat(c.Num.Value, 'g', -1, 64)
	}
	return c.Num.Format(decimals)
}

// Value returns the cell as a JSON-friendly value
func (c Cell) Value() interface{} {
	if !c.Numeric {
		return c.Text
	}
	if !c.Num.Valid {
		return nil
	}
	return c.Num.Value
}

// Table is a tidy table produced by one reporting call. Column sets are
// specific to each table.
type Table struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"-"`
}

// NewTable creates an empty table with the given columns
func NewTable(name, title string, columns ...string) *Table {
	return &Table{Name: name, Title: title, Columns: columns}
}

// Append adds a row; it panics if the cell count does not match the header
func (t *Table) Append(cells ...Cell) {
	if len(cells) != len(t.Columns) {
		panic("types: row width " + strconv.Itoa(len(cells)) + " does not match " + strconv.Itoa(len(t.Columns)) + " columns of " + t.Name)
	}
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Get returns the cell of row i at the named column
func (t *Table) Get(i int, column string) (Cell, bool) {
	j, ok := t.ColumnIndex(column)
	if !ok || i < 0 || i >= len(t.Rows) {
		return Cell{}, false
	}
	return t.Rows[i][j], true
}

// Records returns the rows as column-keyed maps
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			rec[c] = row[j].Value()
		}
		out = append(out, rec)
	}
	return out
}
