package entities

import "strings"

// Table is a raw tabular source as read from a spreadsheet or CSV export.
// Every cell is kept as text; typing happens during normalization.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a column, or -1 when absent.
// Header cells are compared after trimming surrounding whitespace.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	want := strings.TrimSpace(name)
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == want {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has the named column
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at idx, or "" for short rows and idx < 0.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
