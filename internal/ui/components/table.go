// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// EmptyTableText is shown for a table without rows.
const EmptyTableText = "No table data available."

// =============================================================================
// DATA TABLE COMPONENT
// =============================================================================

// DataTable renders a report.Table as a bordered grid. Long tables are
// windowed: Offset is the first row shown and MaxRows caps how many follow.
type DataTable struct {
	Width   int
	MaxRows int
	Offset  int
	// CellWidth caps each cell; longer text is clipped with an ellipsis.
	CellWidth int
	theme     *styles.Theme
}

// NewDataTable creates a table renderer.
func NewDataTable(theme *styles.Theme) *DataTable {
	return &DataTable{Width: 80, CellWidth: 24, theme: theme}
}

// SetWidth updates the available width.
func (d *DataTable) SetWidth(width int) {
	d.Width = width
}

// Scroll moves the window by delta rows, clamped to the table.
func (d *DataTable) Scroll(delta, total int) {
	d.Offset += delta
	if last := total - d.visible(total); d.Offset > last {
		d.Offset = last
	}
	if d.Offset < 0 {
		d.Offset = 0
	}
}

func (d *DataTable) visible(total int) int {
	if d.MaxRows <= 0 || d.MaxRows > total {
		return total
	}
	return d.MaxRows
}

// Render draws t.
func (d *DataTable) Render(t report.Table) string {
	if t.Empty() {
		if d.theme != nil {
			return d.theme.Empty.Render(EmptyTableText)
		}
		return EmptyTableText
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	if d.Width > 0 {
		tw.SetAllowedRowLength(d.Width)
	}

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = d.clip(col)
	}
	tw.AppendHeader(header)

	cells := t.Strings()
	start, end := d.window(len(cells))
	for _, row := range cells[start:end] {
		r := make(table.Row, len(row))
		for i, c := range row {
			r[i] = d.clip(strings.ReplaceAll(c, "\n", " "))
		}
		tw.AppendRow(r)
	}

	out := tw.Render()
	if start > 0 || end < len(cells) {
		out += "\n" + fmt.Sprintf("rows %d-%d of %d", start+1, end, len(cells))
	}
	return out
}

func (d *DataTable) window(total int) (int, int) {
	start := d.Offset
	if start > total {
		start = total
	}
	if start < 0 {
		start = 0
	}
	end := start + d.visible(total)
	if end > total {
		end = total
	}
	return start, end
}

func (d *DataTable) clip(s string) string {
	if d.CellWidth <= 0 {
		return s
	}
	return util.Clip(s, d.CellWidth)
}
