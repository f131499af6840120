package dataprocessing

import (
	"strings"
)

// Table is a parsed tabular input: an ordered set of named columns over
// rows of string cells. It is the exchange format between the upload
// surface and the cleaners; schema is enforced by the cleaner that
// consumes it, not here.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header row and data rows. Column names
// are normalized for lookup (BOM and surrounding whitespace stripped) but
// cell values are preserved exactly as provided.
func NewTable(columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		key := normalizeColumn(name)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	return &Table{columns: columns, index: index, rows: rows}
}

// Columns returns the header row as provided.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns the index of the named column, matching after
// normalization so exports with BOM-prefixed or space-padded headers
// still resolve.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[normalizeColumn(name)]
	return i, ok
}

// Cell returns the value at (row, col), or "" when the row is ragged and
// does not extend to col.
func (t *Table) Cell(row, col int) string {
	r := t.rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// normalizeColumn strips the UTF-8 BOM (both decoded and as the
// cp1252-mojibake sequence some exports carry) and surrounding spaces.
func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\uFEFF")
	name = strings.TrimPrefix(name, "ï»¿")
	return strings.TrimSpace(name)
}
