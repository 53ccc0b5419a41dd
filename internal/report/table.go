// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report turns backend responses into the tables, charts and
// summaries the screens and the CLI display.
package report

import (
	"github.com/jeranaias/estatechat-tui/internal/api"
)

// Missing is shown for a comparison cell the backend left out.
const Missing = "-"

// =============================================================================
// TABLE
// =============================================================================

// Table is a rectangular grid of decoded JSON values. A nil cell is shown as
// an empty string.
type Table struct {
	Columns []string
	Rows    [][]any
}

// TableFromObjects builds a table whose columns are the keys of the first
// row. Keys that only later rows carry are not shown.
func TableFromObjects(rows []api.Object) Table {
	if len(rows) == 0 {
		return Table{}
	}
	t := Table{Columns: append([]string(nil), rows[0].Keys...)}
	for _, row := range rows {
		cells := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = row.Value(col)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Text returns the display text of cell (row, col).
func (t Table) Text(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return api.Text(t.Rows[row][col])
}

// Strings returns every row as display text.
func (t Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = make([]string, len(t.Columns))
		for j := range t.Columns {
			out[i][j] = t.Text(i, j)
		}
	}
	return out
}

// Objects returns the rows as ordered objects, for JSON output.
func (t Table) Objects() []api.Object {
	out := make([]api.Object, 0, len(t.Rows))
	for _, row := range t.Rows {
		pairs := make([]any, 0, 2*len(t.Columns))
		for j, col := range t.Columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			pairs = append(pairs, col, v)
		}
		out = append(out, api.NewObject(pairs...))
	}
	return out
}
